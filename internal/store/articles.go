// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dongaedu/edunews/internal/model"
)

// Find defaults applied when the caller leaves them unset.
const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// FindQuery describes one paginated article lookup.
type FindQuery struct {
	Filter Filter // nil matches every article
	Sort   string // one of the Sort* keys; empty means SortPublishedDesc
	Limit  int
	Page   int // 1-indexed
}

// ArticleStore is the storage seam the repositories depend on. The SQLite
// Articles adapter is the only production implementation; tests substitute an
// in-memory fake.
type ArticleStore interface {
	Find(ctx context.Context, q FindQuery) (Paginated[model.Article], error)
	FindByID(ctx context.Context, id int64) (model.Article, error)
	Create(ctx context.Context, a model.Article) (model.Article, error)
	Update(ctx context.Context, id int64, change ArticleChange) (model.Article, error)
	Delete(ctx context.Context, id int64) error
}

// ArticleChange describes a partial update. Nil fields are left untouched.
type ArticleChange struct {
	Title       *string
	Slug        *string
	Content     *string
	Summary     *string
	Category    *model.Category
	Region      *model.Region
	Author      *string
	ThumbnailID *sql.NullInt64
	Tags        *[]string
	Status      *model.Status
	PublishedAt *sql.NullTime
	ViewCount   *int64
	LegacyID    *sql.NullInt64
}

// Articles is the SQLite-backed ArticleStore.
type Articles struct {
	db *sql.DB
}

// NewArticles creates an article store on the given database.
func NewArticles(db *sql.DB) *Articles {
	return &Articles{db: db}
}

const articleColumns = `
	a.id, a.title, a.slug, a.content, a.summary, a.category, a.region, a.author,
	a.thumbnail_id, a.tags, a.status, a.published_at, a.view_count, a.legacy_id,
	a.created_at, a.updated_at,
	m.id, m.url, m.alt, m.width, m.height, m.created_at, m.updated_at`

const articleFrom = ` FROM articles a LEFT JOIN media m ON m.id = a.thumbnail_id `

// Find returns one page of articles matching the filter, in the given sort
// order, together with the total match count.
func (s *Articles) Find(ctx context.Context, q FindQuery) (Paginated[model.Article], error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}

	where, args, err := FilterSQL(q.Filter)
	if err != nil {
		return Paginated[model.Article]{}, fmt.Errorf("rendering filter: %w", err)
	}

	var total int64
	countQuery := "SELECT COUNT(*)" + articleFrom + "WHERE " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return Paginated[model.Article]{}, fmt.Errorf("counting articles: %w", err)
	}

	query := "SELECT" + articleColumns + articleFrom + "WHERE " + where +
		" ORDER BY " + OrderClause(q.Sort) + " LIMIT ? OFFSET ?"
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Paginated[model.Article]{}, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Article, 0, q.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return Paginated[model.Article]{}, fmt.Errorf("scanning article: %w", err)
		}
		docs = append(docs, a)
	}
	if err := rows.Err(); err != nil {
		return Paginated[model.Article]{}, fmt.Errorf("iterating articles: %w", err)
	}

	return NewPaginated(docs, total, q.Limit, q.Page), nil
}

// FindByID looks up a single article by its identifier.
func (s *Articles) FindByID(ctx context.Context, id int64) (model.Article, error) {
	query := "SELECT" + articleColumns + articleFrom + "WHERE a.id = ?"
	a, err := scanArticle(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, ErrNotFound
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("getting article %d: %w", id, err)
	}
	return a, nil
}

// Create inserts a new article. Status defaults to draft and timestamps are
// set by the store.
func (s *Articles) Create(ctx context.Context, a model.Article) (model.Article, error) {
	if a.Status == "" {
		a.Status = model.StatusDraft
	}
	if err := a.Validate(); err != nil {
		return model.Article{}, fmt.Errorf("validating article: %w", err)
	}

	tags, err := marshalTags(a.Tags)
	if err != nil {
		return model.Article{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (title, slug, content, summary, category, region, author,
			thumbnail_id, tags, status, published_at, view_count, legacy_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Slug, a.Content, a.Summary, string(a.Category), string(a.Region), a.Author,
		a.ThumbnailID, tags, string(a.Status), a.PublishedAt, a.ViewCount, a.LegacyID, now, now)
	if err != nil {
		return model.Article{}, fmt.Errorf("inserting article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Article{}, fmt.Errorf("reading insert id: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update applies a partial change to an article and returns the updated row.
func (s *Articles) Update(ctx context.Context, id int64, change ArticleChange) (model.Article, error) {
	var sets []string
	var args []any

	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if change.Title != nil {
		set("title", *change.Title)
	}
	if change.Slug != nil {
		set("slug", *change.Slug)
	}
	if change.Content != nil {
		set("content", *change.Content)
	}
	if change.Summary != nil {
		set("summary", *change.Summary)
	}
	if change.Category != nil {
		if *change.Category != "" && !change.Category.Valid() {
			return model.Article{}, fmt.Errorf("unknown category %q", *change.Category)
		}
		set("category", string(*change.Category))
	}
	if change.Region != nil {
		if *change.Region != "" && !change.Region.Valid() {
			return model.Article{}, fmt.Errorf("unknown region %q", *change.Region)
		}
		set("region", string(*change.Region))
	}
	if change.Author != nil {
		set("author", *change.Author)
	}
	if change.ThumbnailID != nil {
		set("thumbnail_id", *change.ThumbnailID)
	}
	if change.Tags != nil {
		tags, err := marshalTags(*change.Tags)
		if err != nil {
			return model.Article{}, err
		}
		set("tags", tags)
	}
	if change.Status != nil {
		if !change.Status.Valid() {
			return model.Article{}, fmt.Errorf("unknown article status %q", *change.Status)
		}
		set("status", string(*change.Status))
	}
	if change.PublishedAt != nil {
		set("published_at", *change.PublishedAt)
	}
	if change.ViewCount != nil {
		set("view_count", *change.ViewCount)
	}
	if change.LegacyID != nil {
		set("legacy_id", *change.LegacyID)
	}

	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE articles SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return model.Article{}, fmt.Errorf("updating article %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Article{}, fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return model.Article{}, ErrNotFound
	}

	return s.FindByID(ctx, id)
}

// Delete removes an article.
func (s *Articles) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanArticle reads one article row, including the joined thumbnail.
func scanArticle(row rowScanner) (model.Article, error) {
	var (
		a        model.Article
		category string
		region   string
		status   string
		tags     string

		mediaID      sql.NullInt64
		mediaURL     sql.NullString
		mediaAlt     sql.NullString
		mediaWidth   sql.NullInt64
		mediaHeight  sql.NullInt64
		mediaCreated sql.NullTime
		mediaUpdated sql.NullTime
	)

	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Summary, &category, &region, &a.Author,
		&a.ThumbnailID, &tags, &status, &a.PublishedAt, &a.ViewCount, &a.LegacyID,
		&a.CreatedAt, &a.UpdatedAt,
		&mediaID, &mediaURL, &mediaAlt, &mediaWidth, &mediaHeight, &mediaCreated, &mediaUpdated,
	)
	if err != nil {
		return model.Article{}, err
	}

	a.Category = model.Category(category)
	a.Region = model.Region(region)
	a.Status = model.Status(status)

	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return model.Article{}, fmt.Errorf("decoding tags for article %d: %w", a.ID, err)
	}

	if mediaID.Valid {
		a.Thumbnail = &model.Media{
			ID:        mediaID.Int64,
			URL:       mediaURL.String,
			Alt:       mediaAlt.String,
			Width:     mediaWidth,
			Height:    mediaHeight,
			CreatedAt: mediaCreated.Time,
			UpdatedAt: mediaUpdated.Time,
		}
	}

	return a, nil
}

// marshalTags encodes a tag list as the JSON stored in the tags column.
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	out, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(out), nil
}
