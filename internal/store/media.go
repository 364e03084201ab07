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

// MediaStore persists media library entries.
type MediaStore struct {
	db *sql.DB
}

// NewMedia creates a media store on the given database.
func NewMedia(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Create inserts a new media entry.
func (s *MediaStore) Create(ctx context.Context, m model.Media) (model.Media, error) {
	if m.URL == "" {
		return model.Media{}, fmt.Errorf("media url is required")
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO media (url, alt, width, height, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.URL, m.Alt, m.Width, m.Height, now, now)
	if err != nil {
		return model.Media{}, fmt.Errorf("inserting media: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Media{}, fmt.Errorf("reading insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID looks up a media entry by id.
func (s *MediaStore) GetByID(ctx context.Context, id int64) (model.Media, error) {
	var m model.Media
	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, alt, width, height, created_at, updated_at
		FROM media WHERE id = ?`, id).
		Scan(&m.ID, &m.URL, &m.Alt, &m.Width, &m.Height, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Media{}, ErrNotFound
	}
	if err != nil {
		return model.Media{}, fmt.Errorf("getting media %d: %w", id, err)
	}
	return m, nil
}

// Delete removes a media entry. Articles referencing it keep rendering
// without a thumbnail because the foreign key nulls the reference.
func (s *MediaStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting media %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
