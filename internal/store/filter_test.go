// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"reflect"
	"testing"
)

func TestFilterSQL(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "nil filter matches all",
			filter:   nil,
			wantSQL:  "1=1",
			wantArgs: nil,
		},
		{
			name:     "eq",
			filter:   Eq{Field: "status", Value: "published"},
			wantSQL:  "a.status = ?",
			wantArgs: []any{"published"},
		},
		{
			name:     "contains",
			filter:   Contains{Field: "title", Value: "교육"},
			wantSQL:  `a.title LIKE '%' || ? || '%' ESCAPE '\'`,
			wantArgs: []any{"교육"},
		},
		{
			name:     "contains escapes wildcards",
			filter:   Contains{Field: "title", Value: "50%_off"},
			wantSQL:  `a.title LIKE '%' || ? || '%' ESCAPE '\'`,
			wantArgs: []any{`50\%\_off`},
		},
		{
			name: "and group",
			filter: And{
				Eq{Field: "status", Value: "published"},
				Eq{Field: "category", Value: "economy"},
			},
			wantSQL:  "(a.status = ? AND a.category = ?)",
			wantArgs: []any{"published", "economy"},
		},
		{
			name: "or group",
			filter: Or{
				Contains{Field: "title", Value: "a"},
				Contains{Field: "summary", Value: "a"},
			},
			wantSQL:  `(a.title LIKE '%' || ? || '%' ESCAPE '\' OR a.summary LIKE '%' || ? || '%' ESCAPE '\')`,
			wantArgs: []any{"a", "a"},
		},
		{
			name: "nested groups",
			filter: And{
				Eq{Field: "status", Value: "published"},
				Or{
					Contains{Field: "title", Value: "x"},
					Contains{Field: "content", Value: "x"},
				},
			},
			wantSQL:  `(a.status = ? AND (a.title LIKE '%' || ? || '%' ESCAPE '\' OR a.content LIKE '%' || ? || '%' ESCAPE '\'))`,
			wantArgs: []any{"published", "x", "x"},
		},
		{
			name:     "empty and matches all",
			filter:   And{},
			wantSQL:  "1=1",
			wantArgs: nil,
		},
		{
			name:     "empty or matches none",
			filter:   Or{},
			wantSQL:  "1=0",
			wantArgs: nil,
		},
		{
			name:     "numeric value",
			filter:   Eq{Field: "legacy_id", Value: int64(42)},
			wantSQL:  "a.legacy_id = ?",
			wantArgs: []any{int64(42)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := FilterSQL(tt.filter)
			if err != nil {
				t.Fatalf("FilterSQL() error: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestFilterSQLRejectsUnknownField(t *testing.T) {
	filters := []Filter{
		Eq{Field: "password_hash", Value: "x"},
		Contains{Field: "id; DROP TABLE articles", Value: "x"},
		And{Eq{Field: "status", Value: "published"}, Eq{Field: "nope", Value: 1}},
	}
	for _, f := range filters {
		if _, _, err := FilterSQL(f); err == nil {
			t.Errorf("FilterSQL(%#v) accepted an unknown field", f)
		}
	}
}

func TestFilterEval(t *testing.T) {
	doc := map[string]string{
		"status":   "published",
		"category": "economy",
		"title":    "사교육비 경감 대책",
		"summary":  "",
	}
	get := func(field string) string { return doc[field] }

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"eq match", Eq{Field: "status", Value: "published"}, true},
		{"eq mismatch", Eq{Field: "status", Value: "draft"}, false},
		{"contains match", Contains{Field: "title", Value: "사교육"}, true},
		{"contains mismatch", Contains{Field: "title", Value: "입시"}, false},
		{"empty contains matches", Contains{Field: "summary", Value: ""}, true},
		{"and all match", And{Eq{Field: "status", Value: "published"}, Eq{Field: "category", Value: "economy"}}, true},
		{"and one fails", And{Eq{Field: "status", Value: "published"}, Eq{Field: "category", Value: "culture"}}, false},
		{"or one matches", Or{Eq{Field: "category", Value: "culture"}, Contains{Field: "title", Value: "대책"}}, true},
		{"or none match", Or{Eq{Field: "category", Value: "culture"}, Contains{Field: "title", Value: "입시"}}, false},
		{"empty and", And{}, true},
		{"empty or", Or{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Eval(get); got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}
