// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/store"
	"github.com/dongaedu/edunews/internal/testutil"
)

func TestPublishDueArticles(t *testing.T) {
	db := testutil.TestDB(t)
	articles := store.NewArticles(db)
	s := New(db, testutil.TestLogger())

	now := time.Now().UTC()
	past := sql.NullTime{Time: now.Add(-time.Hour), Valid: true}
	future := sql.NullTime{Time: now.Add(time.Hour), Valid: true}

	due, err := articles.Create(context.Background(), model.Article{
		Title: "due", Slug: "due", Status: model.StatusDraft, PublishedAt: past,
	})
	if err != nil {
		t.Fatalf("creating article: %v", err)
	}
	notYet, err := articles.Create(context.Background(), model.Article{
		Title: "not yet", Slug: "not-yet", Status: model.StatusDraft, PublishedAt: future,
	})
	if err != nil {
		t.Fatalf("creating article: %v", err)
	}
	unscheduled, err := articles.Create(context.Background(), model.Article{
		Title: "unscheduled", Slug: "unscheduled", Status: model.StatusDraft,
	})
	if err != nil {
		t.Fatalf("creating article: %v", err)
	}

	if err := s.publishDueArticles(context.Background()); err != nil {
		t.Fatalf("publishDueArticles() error: %v", err)
	}

	assertStatus := func(id int64, want model.Status) {
		t.Helper()
		got, err := articles.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("FindByID(%d) error: %v", id, err)
		}
		if got.Status != want {
			t.Errorf("article %d status = %q, want %q", id, got.Status, want)
		}
	}

	assertStatus(due.ID, model.StatusPublished)
	assertStatus(notYet.ID, model.StatusDraft)
	assertStatus(unscheduled.ID, model.StatusDraft)
}

func TestStartAndStop(t *testing.T) {
	s := New(testutil.TestDB(t), testutil.TestLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	s.Stop()
}
