// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dongaedu/edunews/internal/model"
)

// UserStore persists editorial accounts.
type UserStore struct {
	db *sql.DB
}

// NewUsers creates a user store on the given database.
func NewUsers(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user.
func (s *UserStore) Create(ctx context.Context, u model.User) (model.User, error) {
	if u.Email == "" {
		return model.User{}, fmt.Errorf("user email is required")
	}
	if u.PasswordHash == "" {
		return model.User{}, fmt.Errorf("user password hash is required")
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.Email, u.Name, u.PasswordHash, now, now)
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID looks up a user by id.
func (s *UserStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	return s.get(ctx, "id = ?", id)
}

// GetByEmail looks up a user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return s.get(ctx, "email = ?", email)
}

func (s *UserStore) get(ctx context.Context, where string, arg any) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
