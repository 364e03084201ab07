// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Package repo exposes the typed read/write operations the site is built on.
// It is the single seam between handlers and the content store: every read
// defaults to published-only visibility unless a status is requested
// explicitly, and every paginated response is normalized to store.Paginated.
package repo

import (
	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/store"
)

// QueryOptions describes one content-query intent. The zero value means
// "published articles, first page of twelve, newest first".
type QueryOptions struct {
	Category model.Category // optional
	Region   model.Region   // optional
	Status   model.Status   // optional; empty defaults to published
	Page     int            // 1-indexed; values below 1 mean page 1
	Limit    int            // values below 1 mean store.DefaultLimit
	Sort     string         // one of the store.Sort* keys
}

// Filter translates the options into a store predicate. There is always
// exactly one status clause: the explicit status when set, published
// otherwise, so unauthenticated queries never see drafts by accident.
// A single clause is returned unwrapped.
func (o QueryOptions) Filter() store.Filter {
	status := o.Status
	if status == "" {
		status = model.StatusPublished
	}

	clauses := []store.Filter{store.Eq{Field: "status", Value: string(status)}}
	if o.Category != "" {
		clauses = append(clauses, store.Eq{Field: "category", Value: string(o.Category)})
	}
	if o.Region != "" {
		clauses = append(clauses, store.Eq{Field: "region", Value: string(o.Region)})
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	return store.And(clauses)
}

// findQuery builds the store query for these options around the given filter.
func (o QueryOptions) findQuery(f store.Filter) store.FindQuery {
	page := o.Page
	if page < 1 {
		page = store.DefaultPage
	}
	limit := o.Limit
	if limit < 1 {
		limit = store.DefaultLimit
	}
	sort := o.Sort
	if sort == "" {
		sort = store.SortPublishedDesc
	}
	return store.FindQuery{Filter: f, Sort: sort, Limit: limit, Page: page}
}
