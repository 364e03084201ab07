// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"strings"
	"testing"
)

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name           string
		totalDocs      int64
		limit          int
		page           int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{"empty result", 0, 12, 1, 0, false, false},
		{"single partial page", 5, 12, 1, 1, false, false},
		{"exactly one page", 12, 12, 1, 1, false, false},
		{"one over the boundary", 13, 12, 1, 2, true, false},
		{"middle page", 50, 12, 3, 5, true, true},
		{"last page", 50, 12, 5, 5, false, true},
		{"page past the end", 10, 12, 4, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated([]int{}, tt.totalDocs, tt.limit, tt.page)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantHasNext)
			}
			if p.HasPrevPage != tt.wantHasPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.wantHasPrev)
			}
		})
	}
}

func TestOrderClause(t *testing.T) {
	if got := OrderClause(SortViewsDesc); got != "a.view_count DESC, a.id DESC" {
		t.Errorf("OrderClause(%q) = %q", SortViewsDesc, got)
	}

	// Unknown keys fall back to newest first instead of reaching the SQL.
	for _, sort := range []string{"", "evil; DROP TABLE articles", "-created_at"} {
		got := OrderClause(sort)
		if got != orderClauses[SortPublishedDesc] {
			t.Errorf("OrderClause(%q) = %q, want default", sort, got)
		}
		if strings.Contains(got, ";") {
			t.Errorf("OrderClause(%q) leaked input into SQL: %q", sort, got)
		}
	}
}
