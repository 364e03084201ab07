// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/store"
)

// ErrAlreadySubscribed is returned when the email already has an active
// subscription.
var ErrAlreadySubscribed = errors.New("repo: already subscribed")

// SubscriberRepo manages newsletter subscriptions and their verification
// lifecycle: pending on signup, active after the token round-trip,
// unsubscribed on request.
type SubscriberRepo struct {
	subscribers *store.SubscriberStore
}

// NewSubscribers creates a subscriber repository on the given store.
func NewSubscribers(subscribers *store.SubscriberStore) *SubscriberRepo {
	return &SubscriberRepo{subscribers: subscribers}
}

// Subscribe registers an email for the newsletter and returns the pending
// subscriber carrying a fresh verification token. Re-subscribing a pending or
// unsubscribed email issues a new token; an active subscription returns
// ErrAlreadySubscribed.
func (r *SubscriberRepo) Subscribe(ctx context.Context, email, name string) (model.Subscriber, error) {
	token := uuid.NewString()

	existing, err := r.subscribers.GetByEmail(ctx, email)
	if err == nil {
		if existing.Status == model.SubscriberActive {
			return model.Subscriber{}, ErrAlreadySubscribed
		}
		if err := r.subscribers.SetStatus(ctx, existing.ID, model.SubscriberPending, token, sql.NullTime{}); err != nil {
			return model.Subscriber{}, fmt.Errorf("resetting subscription: %w", err)
		}
		return r.subscribers.GetByID(ctx, existing.ID)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.Subscriber{}, err
	}

	return r.subscribers.Create(ctx, model.Subscriber{
		Email:             email,
		Name:              name,
		Status:            model.SubscriberPending,
		VerificationToken: token,
	})
}

// Verify activates the subscription matching the token and clears the token.
func (r *SubscriberRepo) Verify(ctx context.Context, token string) (model.Subscriber, error) {
	sub, err := r.subscribers.GetByToken(ctx, token)
	if err != nil {
		return model.Subscriber{}, err
	}

	subscribedAt := sql.NullTime{Time: time.Now().UTC(), Valid: true}
	if err := r.subscribers.SetStatus(ctx, sub.ID, model.SubscriberActive, "", subscribedAt); err != nil {
		return model.Subscriber{}, fmt.Errorf("activating subscription: %w", err)
	}
	return r.subscribers.GetByID(ctx, sub.ID)
}

// List returns subscribers newest first, optionally filtered by status.
func (r *SubscriberRepo) List(ctx context.Context, status model.SubscriberStatus, limit, offset int) ([]model.Subscriber, error) {
	return r.subscribers.List(ctx, status, limit, offset)
}

// Unsubscribe marks the email's subscription as unsubscribed.
func (r *SubscriberRepo) Unsubscribe(ctx context.Context, email string) error {
	sub, err := r.subscribers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return r.subscribers.SetStatus(ctx, sub.ID, model.SubscriberUnsubscribed, "", sub.SubscribedAt)
}
