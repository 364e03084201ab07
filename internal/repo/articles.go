// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package repo

import (
	"context"
	"strings"

	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/store"
)

// ErrNotFound is returned when a lookup matches no article. FindByID coerces
// every failure to this error so callers need a single absence check.
var ErrNotFound = store.ErrNotFound

// ArticleRepo is the article query service. One instance is constructed in
// main and passed to every consumer explicitly.
type ArticleRepo struct {
	articles store.ArticleStore
}

// NewArticles creates an article repository on the given store.
func NewArticles(articles store.ArticleStore) *ArticleRepo {
	return &ArticleRepo{articles: articles}
}

// FindByID looks up an article by identity. Any lookup failure, including a
// storage error, is reported as ErrNotFound.
func (r *ArticleRepo) FindByID(ctx context.Context, id int64) (model.Article, error) {
	a, err := r.articles.FindByID(ctx, id)
	if err != nil {
		return model.Article{}, ErrNotFound
	}
	return a, nil
}

// FindBySlug looks up an article by its unique slug. No status filter is
// applied: detail pages decide themselves whether unpublished content may be
// shown (see Article.IsPublished).
func (r *ArticleRepo) FindBySlug(ctx context.Context, slug string) (model.Article, error) {
	return r.findOne(ctx, store.Eq{Field: "slug", Value: slug})
}

// FindByLegacyID looks up an article by the numeric key carried over from the
// previous system. Used only for migration reconciliation.
func (r *ArticleRepo) FindByLegacyID(ctx context.Context, legacyID int64) (model.Article, error) {
	return r.findOne(ctx, store.Eq{Field: "legacy_id", Value: legacyID})
}

func (r *ArticleRepo) findOne(ctx context.Context, f store.Filter) (model.Article, error) {
	result, err := r.articles.Find(ctx, store.FindQuery{Filter: f, Limit: 1, Page: 1})
	if err != nil {
		return model.Article{}, err
	}
	if len(result.Docs) == 0 {
		return model.Article{}, ErrNotFound
	}
	return result.Docs[0], nil
}

// FindAll returns one page of articles matching the options.
func (r *ArticleRepo) FindAll(ctx context.Context, opts QueryOptions) (store.Paginated[model.Article], error) {
	return r.articles.Find(ctx, opts.findQuery(opts.Filter()))
}

// FindByCategory returns one page of articles in the category. The explicit
// category overrides any category already present in the options.
func (r *ArticleRepo) FindByCategory(ctx context.Context, category model.Category, opts QueryOptions) (store.Paginated[model.Article], error) {
	opts.Category = category
	return r.FindAll(ctx, opts)
}

// FindByRegion returns one page of articles in the region. The explicit
// region overrides any region already present in the options.
func (r *ArticleRepo) FindByRegion(ctx context.Context, region model.Region, opts QueryOptions) (store.Paginated[model.Article], error) {
	opts.Region = region
	return r.FindAll(ctx, opts)
}

// Search returns one page of articles whose title, summary or content
// contains the query, restricted by the usual status clause. An empty or
// whitespace-only query matches every article passing the status clause;
// callers wanting different behavior check the query before calling.
func (r *ArticleRepo) Search(ctx context.Context, query string, opts QueryOptions) (store.Paginated[model.Article], error) {
	status := opts.Status
	if status == "" {
		status = model.StatusPublished
	}

	query = strings.TrimSpace(query)
	f := store.And{
		store.Eq{Field: "status", Value: string(status)},
		store.Or{
			store.Contains{Field: "title", Value: query},
			store.Contains{Field: "summary", Value: query},
			store.Contains{Field: "content", Value: query},
		},
	}
	return r.articles.Find(ctx, opts.findQuery(f))
}

// Save creates a new article. Validation beyond basic shape checks is the
// store's job.
func (r *ArticleRepo) Save(ctx context.Context, a model.Article) (model.Article, error) {
	return r.articles.Create(ctx, a)
}

// Update applies a partial change to an article.
func (r *ArticleRepo) Update(ctx context.Context, id int64, change store.ArticleChange) (model.Article, error) {
	return r.articles.Update(ctx, id, change)
}

// Delete removes an article.
func (r *ArticleRepo) Delete(ctx context.Context, id int64) error {
	return r.articles.Delete(ctx, id)
}

// IncrementViewCount bumps an article's view counter by one. The counter is
// read then written back, so two concurrent increments can lose one update.
// That is accepted: the counter is best-effort and callers on the detail page
// fire this without waiting for, or acting on, the result.
func (r *ArticleRepo) IncrementViewCount(ctx context.Context, id int64) error {
	a, err := r.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	next := a.ViewCount + 1
	_, err = r.articles.Update(ctx, id, store.ArticleChange{ViewCount: &next})
	return err
}
