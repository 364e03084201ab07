// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dongaedu/edunews/internal/model"
)

// testDB opens a migrated database in a temp directory. The testutil helper
// is not used here because it would import this package back.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func publishedAt(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}

func mustCreate(t *testing.T, s *Articles, a model.Article) model.Article {
	t.Helper()
	created, err := s.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("creating article %q: %v", a.Slug, err)
	}
	return created
}

func TestArticlesCreate(t *testing.T) {
	s := NewArticles(testDB(t))

	created := mustCreate(t, s, model.Article{
		Title:    "테스트 기사",
		Slug:     "test-article",
		Content:  "본문",
		Category: model.CategoryEconomy,
		Tags:     []string{"교육", "정책"},
	})

	if created.ID == 0 {
		t.Error("created article has no id")
	}
	if created.Status != model.StatusDraft {
		t.Errorf("Status = %q, want draft by default", created.Status)
	}
	if created.ViewCount != 0 {
		t.Errorf("ViewCount = %d, want 0", created.ViewCount)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "교육" {
		t.Errorf("Tags = %v", created.Tags)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestArticlesCreateRejectsInvalid(t *testing.T) {
	s := NewArticles(testDB(t))

	tests := []struct {
		name    string
		article model.Article
	}{
		{"missing title", model.Article{Slug: "x"}},
		{"missing slug", model.Article{Title: "x"}},
		{"bad category", model.Article{Title: "x", Slug: "x", Category: "sports"}},
		{"bad region", model.Article{Title: "x", Slug: "x", Region: "jeju"}},
		{"bad status", model.Article{Title: "x", Slug: "x", Status: "pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Create(context.Background(), tt.article); err == nil {
				t.Error("Create() accepted an invalid article")
			}
		})
	}
}

func TestArticlesCreateDuplicateSlug(t *testing.T) {
	s := NewArticles(testDB(t))
	mustCreate(t, s, model.Article{Title: "one", Slug: "same-slug"})

	if _, err := s.Create(context.Background(), model.Article{Title: "two", Slug: "same-slug"}); err == nil {
		t.Error("Create() accepted a duplicate slug")
	}
}

func TestArticlesFindByID(t *testing.T) {
	s := NewArticles(testDB(t))
	created := mustCreate(t, s, model.Article{Title: "t", Slug: "t"})

	got, err := s.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Slug != "t" {
		t.Errorf("Slug = %q, want %q", got.Slug, "t")
	}

	_, err = s.FindByID(context.Background(), 99999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestArticlesFind(t *testing.T) {
	s := NewArticles(testDB(t))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Three published economy articles, one published culture, one draft.
	for _, a := range []model.Article{
		{Title: "경제 1", Slug: "econ-1", Category: model.CategoryEconomy, Status: model.StatusPublished, PublishedAt: publishedAt(base.Add(1 * time.Hour))},
		{Title: "경제 2", Slug: "econ-2", Category: model.CategoryEconomy, Status: model.StatusPublished, PublishedAt: publishedAt(base.Add(2 * time.Hour))},
		{Title: "경제 3", Slug: "econ-3", Category: model.CategoryEconomy, Status: model.StatusPublished, PublishedAt: publishedAt(base.Add(3 * time.Hour))},
		{Title: "문화 1", Slug: "culture-1", Category: model.CategoryCulture, Status: model.StatusPublished, PublishedAt: publishedAt(base.Add(4 * time.Hour))},
		{Title: "초안", Slug: "draft-1", Category: model.CategoryEconomy, Status: model.StatusDraft},
	} {
		mustCreate(t, s, a)
	}

	published := Eq{Field: "status", Value: "published"}

	t.Run("filter and sort", func(t *testing.T) {
		page, err := s.Find(context.Background(), FindQuery{
			Filter: And{published, Eq{Field: "category", Value: "economy"}},
		})
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if page.TotalDocs != 3 {
			t.Fatalf("TotalDocs = %d, want 3", page.TotalDocs)
		}
		if page.Docs[0].Slug != "econ-3" {
			t.Errorf("first doc = %q, want newest first", page.Docs[0].Slug)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := s.Find(context.Background(), FindQuery{Filter: published, Limit: 2, Page: 2})
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if page.TotalDocs != 4 {
			t.Errorf("TotalDocs = %d, want 4", page.TotalDocs)
		}
		if page.TotalPages != 2 {
			t.Errorf("TotalPages = %d, want 2", page.TotalPages)
		}
		if len(page.Docs) != 2 {
			t.Errorf("len(Docs) = %d, want 2", len(page.Docs))
		}
		if !page.HasPrevPage || page.HasNextPage {
			t.Errorf("flags = prev %v next %v, want prev only", page.HasPrevPage, page.HasNextPage)
		}
	})

	t.Run("ascending sort", func(t *testing.T) {
		page, err := s.Find(context.Background(), FindQuery{Filter: published, Sort: SortPublishedAsc})
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if page.Docs[0].Slug != "econ-1" {
			t.Errorf("first doc = %q, want oldest first", page.Docs[0].Slug)
		}
	})

	t.Run("contains", func(t *testing.T) {
		page, err := s.Find(context.Background(), FindQuery{
			Filter: Contains{Field: "title", Value: "경제"},
		})
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if page.TotalDocs != 3 {
			t.Errorf("TotalDocs = %d, want 3", page.TotalDocs)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		page, err := s.Find(context.Background(), FindQuery{
			Filter: Eq{Field: "status", Value: "archived"},
		})
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if page.TotalDocs != 0 || page.TotalPages != 0 {
			t.Errorf("TotalDocs = %d TotalPages = %d, want 0 and 0", page.TotalDocs, page.TotalPages)
		}
	})
}

func TestArticlesFindJoinsThumbnail(t *testing.T) {
	db := testDB(t)
	media := NewMedia(db)
	s := NewArticles(db)

	m, err := media.Create(context.Background(), model.Media{URL: "/uploads/a.jpg", Alt: "대표 이미지"})
	if err != nil {
		t.Fatalf("creating media: %v", err)
	}

	created := mustCreate(t, s, model.Article{
		Title:       "with thumb",
		Slug:        "with-thumb",
		ThumbnailID: sql.NullInt64{Int64: m.ID, Valid: true},
	})

	got, err := s.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Thumbnail == nil {
		t.Fatal("Thumbnail not joined")
	}
	if got.Thumbnail.URL != "/uploads/a.jpg" {
		t.Errorf("Thumbnail.URL = %q", got.Thumbnail.URL)
	}
}

func TestArticlesUpdate(t *testing.T) {
	s := NewArticles(testDB(t))
	created := mustCreate(t, s, model.Article{Title: "before", Slug: "before"})

	title := "after"
	status := model.StatusPublished
	now := publishedAt(time.Now().UTC())
	updated, err := s.Update(context.Background(), created.ID, ArticleChange{
		Title:       &title,
		Status:      &status,
		PublishedAt: &now,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Title != "after" {
		t.Errorf("Title = %q, want %q", updated.Title, "after")
	}
	if updated.Status != model.StatusPublished {
		t.Errorf("Status = %q, want published", updated.Status)
	}
	if updated.Slug != "before" {
		t.Errorf("Slug changed to %q, untouched fields must survive", updated.Slug)
	}

	t.Run("missing article", func(t *testing.T) {
		_, err := s.Update(context.Background(), 99999, ArticleChange{Title: &title})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		bad := model.Status("pending")
		if _, err := s.Update(context.Background(), created.ID, ArticleChange{Status: &bad}); err == nil {
			t.Error("Update() accepted an invalid status")
		}
	})

	t.Run("empty change is a fetch", func(t *testing.T) {
		got, err := s.Update(context.Background(), created.ID, ArticleChange{})
		if err != nil {
			t.Fatalf("Update() error: %v", err)
		}
		if got.Title != "after" {
			t.Errorf("Title = %q", got.Title)
		}
	})
}

func TestArticlesDelete(t *testing.T) {
	s := NewArticles(testDB(t))
	created := mustCreate(t, s, model.Article{Title: "t", Slug: "t"})

	if err := s.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.FindByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("article still present after delete: %v", err)
	}
	if err := s.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
