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

// SubscriberStore persists newsletter subscribers.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscribers creates a subscriber store on the given database.
func NewSubscribers(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

const subscriberColumns = `
	id, email, name, status, subscribed_at, verification_token, created_at, updated_at`

// Create inserts a new subscriber. The unique email constraint surfaces as an
// error the caller maps to its own duplicate policy.
func (s *SubscriberStore) Create(ctx context.Context, sub model.Subscriber) (model.Subscriber, error) {
	if sub.Status == "" {
		sub.Status = model.SubscriberPending
	}
	if !sub.Status.Valid() {
		return model.Subscriber{}, fmt.Errorf("unknown subscriber status %q", sub.Status)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (email, name, status, subscribed_at, verification_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.Email, sub.Name, string(sub.Status), sub.SubscribedAt, sub.VerificationToken, now, now)
	if err != nil {
		return model.Subscriber{}, fmt.Errorf("inserting subscriber: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Subscriber{}, fmt.Errorf("reading insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID looks up a subscriber by id.
func (s *SubscriberStore) GetByID(ctx context.Context, id int64) (model.Subscriber, error) {
	return s.get(ctx, "id = ?", id)
}

// GetByEmail looks up a subscriber by email.
func (s *SubscriberStore) GetByEmail(ctx context.Context, email string) (model.Subscriber, error) {
	return s.get(ctx, "email = ?", email)
}

// GetByToken looks up a subscriber by verification token.
func (s *SubscriberStore) GetByToken(ctx context.Context, token string) (model.Subscriber, error) {
	if token == "" {
		return model.Subscriber{}, ErrNotFound
	}
	return s.get(ctx, "verification_token = ?", token)
}

func (s *SubscriberStore) get(ctx context.Context, where string, arg any) (model.Subscriber, error) {
	var (
		sub    model.Subscriber
		status string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT"+subscriberColumns+" FROM subscribers WHERE "+where, arg).
		Scan(&sub.ID, &sub.Email, &sub.Name, &status, &sub.SubscribedAt,
			&sub.VerificationToken, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, ErrNotFound
	}
	if err != nil {
		return model.Subscriber{}, fmt.Errorf("getting subscriber: %w", err)
	}
	sub.Status = model.SubscriberStatus(status)
	return sub, nil
}

// SetStatus updates a subscriber's status. An empty token clears the stored
// verification token.
func (s *SubscriberStore) SetStatus(ctx context.Context, id int64, status model.SubscriberStatus, token string, subscribedAt sql.NullTime) error {
	if !status.Valid() {
		return fmt.Errorf("unknown subscriber status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE subscribers
		SET status = ?, verification_token = ?, subscribed_at = ?, updated_at = ?
		WHERE id = ?`,
		string(status), token, subscribedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating subscriber %d: %w", id, err)
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

// List returns subscribers filtered by status ("" means all), newest first.
func (s *SubscriberStore) List(ctx context.Context, status model.SubscriberStatus, limit, offset int) ([]model.Subscriber, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT" + subscriberColumns + " FROM subscribers"
	var args []any
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("unknown subscriber status %q", status)
		}
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscriber
	for rows.Next() {
		var (
			sub    model.Subscriber
			status string
		)
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Name, &status, &sub.SubscribedAt,
			&sub.VerificationToken, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning subscriber: %w", err)
		}
		sub.Status = model.SubscriberStatus(status)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
