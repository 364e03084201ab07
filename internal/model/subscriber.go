// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Subscriber statuses
const (
	SubscriberPending      = SubscriberStatus("pending")
	SubscriberActive       = SubscriberStatus("active")
	SubscriberUnsubscribed = SubscriberStatus("unsubscribed")
)

// SubscriberStatus is the lifecycle state of a newsletter subscription.
type SubscriberStatus string

// Valid reports whether s is one of the known subscriber statuses.
func (s SubscriberStatus) Valid() bool {
	switch s {
	case SubscriberPending, SubscriberActive, SubscriberUnsubscribed:
		return true
	}
	return false
}

// ParseSubscriberStatus converts a string to a SubscriberStatus.
func ParseSubscriberStatus(s string) (SubscriberStatus, error) {
	st := SubscriberStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown subscriber status %q", s)
	}
	return st, nil
}

// Subscriber represents a newsletter subscriber.
type Subscriber struct {
	ID                int64            `json:"id"`
	Email             string           `json:"email"`
	Name              string           `json:"name,omitempty"`
	Status            SubscriberStatus `json:"status"`
	SubscribedAt      sql.NullTime     `json:"subscribed_at,omitempty"`
	VerificationToken string           `json:"-"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// IsActive returns true if the subscription has been verified.
func (s *Subscriber) IsActive() bool {
	return s.Status == SubscriberActive
}
