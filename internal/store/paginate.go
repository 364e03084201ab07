// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

// Sort keys accepted by Find. Anything else falls back to SortPublishedDesc.
const (
	SortPublishedDesc = "-published_at"
	SortPublishedAsc  = "published_at"
	SortViewsDesc     = "-view_count"
	SortViewsAsc      = "view_count"
)

// orderClauses maps sort keys to their ORDER BY expressions. The id tie-break
// keeps page boundaries stable when timestamps collide.
var orderClauses = map[string]string{
	SortPublishedDesc: "a.published_at DESC, a.id DESC",
	SortPublishedAsc:  "a.published_at ASC, a.id ASC",
	SortViewsDesc:     "a.view_count DESC, a.id DESC",
	SortViewsAsc:      "a.view_count ASC, a.id ASC",
}

// OrderClause returns the ORDER BY expression for a sort key.
func OrderClause(sort string) string {
	if clause, ok := orderClauses[sort]; ok {
		return clause
	}
	return orderClauses[SortPublishedDesc]
}

// Paginated wraps one page of a larger result set together with the metadata
// needed to compute further pages.
type Paginated[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPaginated builds a Paginated result, deriving TotalPages and the
// has-next/has-prev flags. With zero total documents TotalPages is zero and
// both flags are false.
func NewPaginated[T any](docs []T, totalDocs int64, limit, page int) Paginated[T] {
	p := Paginated[T]{
		Docs:      docs,
		TotalDocs: totalDocs,
		Limit:     limit,
		Page:      page,
	}
	if limit > 0 {
		p.TotalPages = int((totalDocs + int64(limit) - 1) / int64(limit))
	}
	p.HasNextPage = page < p.TotalPages
	p.HasPrevPage = page > 1
	return p
}
