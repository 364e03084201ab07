// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides presentation helpers shared by the frontend
// templates, most notably pagination controls.
package uikit

import (
	"fmt"
	"net/http"
	"strconv"
)

// WindowSize is the maximum number of page links shown in a pagination
// control.
const WindowSize = 5

// PageWindow computes which page numbers to display around the current page.
// With one page or fewer it returns nil and no control is rendered. Otherwise
// it emits min(totalPages, size) consecutive numbers starting at
// max(1, min(currentPage-2, totalPages-size+1)), centering the current page
// and clamping the window to [1, totalPages]. currentPage is not validated;
// callers clamp their input page before querying.
func PageWindow(currentPage, totalPages, size int) []int {
	if totalPages <= 1 || size <= 0 {
		return nil
	}

	start := currentPage - 2
	if start > totalPages-size+1 {
		start = totalPages - size + 1
	}
	if start < 1 {
		start = 1
	}

	count := size
	if totalPages < size {
		count = totalPages
	}

	pages := make([]int, count)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// Pagination holds pagination data for frontend templates.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	Pages       []PaginationPage
}

// PaginationPage represents a single page link in pagination.
type PaginationPage struct {
	Number    int
	URL       string
	IsCurrent bool
}

// BuildPagination creates pagination data for frontend templates.
// basePath is the path without query string (e.g. "/articles"); extraQuery is
// an already-encoded query fragment to preserve across pages (e.g. "q=foo"),
// or empty.
func BuildPagination(currentPage, totalPages int, totalItems int64, perPage int, basePath, extraQuery string) Pagination {
	buildURL := func(page int) string {
		if extraQuery != "" {
			return fmt.Sprintf("%s?%s&page=%d", basePath, extraQuery, page)
		}
		return fmt.Sprintf("%s?page=%d", basePath, page)
	}

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
	if p.HasPrev {
		p.PrevURL = buildURL(currentPage - 1)
	}
	if p.HasNext {
		p.NextURL = buildURL(currentPage + 1)
	}

	for _, number := range PageWindow(currentPage, totalPages, WindowSize) {
		p.Pages = append(p.Pages, PaginationPage{
			Number:    number,
			URL:       buildURL(number),
			IsCurrent: number == currentPage,
		})
	}

	return p
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// ParsePageParam parses the "page" query parameter from the request.
// Returns 1 if the parameter is missing, empty, or invalid.
func ParsePageParam(r *http.Request) int {
	str := r.URL.Query().Get("page")
	if str == "" {
		return 1
	}
	val, err := strconv.Atoi(str)
	if err != nil || val < 1 {
		return 1
	}
	return val
}
