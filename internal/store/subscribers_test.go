// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dongaedu/edunews/internal/model"
)

func TestSubscribersCreateAndGet(t *testing.T) {
	s := NewSubscribers(testDB(t))

	created, err := s.Create(context.Background(), model.Subscriber{
		Email:             "reader@example.com",
		Name:              "독자",
		VerificationToken: "tok-1",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.Status != model.SubscriberPending {
		t.Errorf("Status = %q, want pending by default", created.Status)
	}

	byEmail, err := s.GetByEmail(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("GetByEmail id = %d, want %d", byEmail.ID, created.ID)
	}

	byToken, err := s.GetByToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("GetByToken() error: %v", err)
	}
	if byToken.ID != created.ID {
		t.Errorf("GetByToken id = %d, want %d", byToken.ID, created.ID)
	}
}

func TestSubscribersDuplicateEmail(t *testing.T) {
	s := NewSubscribers(testDB(t))
	if _, err := s.Create(context.Background(), model.Subscriber{Email: "a@example.com"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := s.Create(context.Background(), model.Subscriber{Email: "a@example.com"}); err == nil {
		t.Error("Create() accepted a duplicate email")
	}
}

func TestSubscribersGetByTokenEmpty(t *testing.T) {
	s := NewSubscribers(testDB(t))

	// Subscribers whose token was cleared must not be reachable through an
	// empty token parameter.
	if _, err := s.Create(context.Background(), model.Subscriber{Email: "a@example.com"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := s.GetByToken(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByToken(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestSubscribersSetStatus(t *testing.T) {
	s := NewSubscribers(testDB(t))
	created, err := s.Create(context.Background(), model.Subscriber{
		Email:             "a@example.com",
		VerificationToken: "tok",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	at := sql.NullTime{Time: time.Now().UTC(), Valid: true}
	if err := s.SetStatus(context.Background(), created.ID, model.SubscriberActive, "", at); err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}

	got, err := s.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Status != model.SubscriberActive {
		t.Errorf("Status = %q, want active", got.Status)
	}
	if got.VerificationToken != "" {
		t.Errorf("VerificationToken = %q, want cleared", got.VerificationToken)
	}
	if !got.SubscribedAt.Valid {
		t.Error("SubscribedAt not set")
	}

	if err := s.SetStatus(context.Background(), 99999, model.SubscriberActive, "", at); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.SetStatus(context.Background(), created.ID, "banned", "", at); err == nil {
		t.Error("SetStatus() accepted an unknown status")
	}
}

func TestSubscribersList(t *testing.T) {
	s := NewSubscribers(testDB(t))
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := s.Create(context.Background(), model.Subscriber{Email: email}); err != nil {
			t.Fatalf("Create(%s) error: %v", email, err)
		}
	}
	b, err := s.GetByEmail(context.Background(), "b@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if err := s.SetStatus(context.Background(), b.ID, model.SubscriberActive, "", sql.NullTime{}); err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}

	all, err := s.List(context.Background(), "", 50, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}

	active, err := s.List(context.Background(), model.SubscriberActive, 50, 0)
	if err != nil {
		t.Fatalf("List(active) error: %v", err)
	}
	if len(active) != 1 || active[0].Email != "b@example.com" {
		t.Errorf("active = %+v", active)
	}

	if _, err := s.List(context.Background(), "banned", 50, 0); err == nil {
		t.Error("List() accepted an unknown status")
	}
}
