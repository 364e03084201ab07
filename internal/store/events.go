// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dongaedu/edunews/internal/model"
)

// EventStore persists system event log entries.
type EventStore struct {
	db *sql.DB
}

// NewEvents creates an event store on the given database.
func NewEvents(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// Create inserts an event log entry.
func (s *EventStore) Create(ctx context.Context, e model.Event) (model.Event, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.Level, e.Category, e.Message, e.Metadata, e.CreatedAt)
	if err != nil {
		return model.Event{}, fmt.Errorf("inserting event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, fmt.Errorf("reading insert id: %w", err)
	}
	e.ID = id
	return e, nil
}

// ListRecent returns the most recent events, newest first.
func (s *EventStore) ListRecent(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, level, category, message, metadata, created_at
		FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
