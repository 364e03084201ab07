// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dongaedu/edunews/internal/auth"
	"github.com/dongaedu/edunews/internal/model"
)

// Default editor credentials, replaced on first login in any real deployment.
const (
	DefaultAdminEmail    = "editor@donga-edu.example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "편집국"
)

// Seed creates the initial editor account if no account exists yet.
func Seed(ctx context.Context, db *sql.DB) error {
	users := NewUsers(db)

	_, err := users.GetByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("editor account already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for editor account: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := users.Create(ctx, model.User{
		Email:        DefaultAdminEmail,
		Name:         DefaultAdminName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("creating editor account: %w", err)
	}

	slog.Info("created default editor account",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}
