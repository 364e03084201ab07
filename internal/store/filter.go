// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"fmt"
	"strings"
)

// filterColumns whitelists the article fields a filter may reference and maps
// them to their SQL columns. Anything outside this map is rejected when the
// filter is rendered, so filters built from request input cannot reach
// arbitrary columns.
var filterColumns = map[string]string{
	"status":    "a.status",
	"category":  "a.category",
	"region":    "a.region",
	"title":     "a.title",
	"summary":   "a.summary",
	"content":   "a.content",
	"slug":      "a.slug",
	"legacy_id": "a.legacy_id",
}

// Filter is a predicate over article fields. It renders itself to
// parameterized SQL for the SQLite store and evaluates itself in memory for
// fakes, so both implementations of ArticleStore share one predicate model.
type Filter interface {
	appendSQL(b *strings.Builder, args *[]any) error

	// Eval evaluates the predicate against a document, reading field values
	// through get. Numeric fields are compared by their decimal string form.
	Eval(get func(field string) string) bool
}

// Eq matches documents whose field equals the given value.
type Eq struct {
	Field string
	Value any
}

func (e Eq) appendSQL(b *strings.Builder, args *[]any) error {
	col, ok := filterColumns[e.Field]
	if !ok {
		return fmt.Errorf("unknown filter field %q", e.Field)
	}
	b.WriteString(col)
	b.WriteString(" = ?")
	*args = append(*args, e.Value)
	return nil
}

// Eval implements Filter.
func (e Eq) Eval(get func(string) string) bool {
	return get(e.Field) == fmt.Sprint(e.Value)
}

// Contains matches documents whose field contains the given substring.
// An empty substring matches every document.
type Contains struct {
	Field string
	Value string
}

func (c Contains) appendSQL(b *strings.Builder, args *[]any) error {
	col, ok := filterColumns[c.Field]
	if !ok {
		return fmt.Errorf("unknown filter field %q", c.Field)
	}
	b.WriteString(col)
	b.WriteString(` LIKE '%' || ? || '%' ESCAPE '\'`)
	*args = append(*args, escapeLike(c.Value))
	return nil
}

// Eval implements Filter.
func (c Contains) Eval(get func(string) string) bool {
	return strings.Contains(get(c.Field), c.Value)
}

// And matches documents satisfying every sub-filter. An empty And matches all.
type And []Filter

func (a And) appendSQL(b *strings.Builder, args *[]any) error {
	return appendGroup(b, args, a, " AND ", "1=1")
}

// Eval implements Filter.
func (a And) Eval(get func(string) string) bool {
	for _, f := range a {
		if !f.Eval(get) {
			return false
		}
	}
	return true
}

// Or matches documents satisfying at least one sub-filter. An empty Or matches none.
type Or []Filter

func (o Or) appendSQL(b *strings.Builder, args *[]any) error {
	return appendGroup(b, args, o, " OR ", "1=0")
}

// Eval implements Filter.
func (o Or) Eval(get func(string) string) bool {
	for _, f := range o {
		if f.Eval(get) {
			return true
		}
	}
	return false
}

// appendGroup renders a parenthesized group of sub-filters joined by sep.
func appendGroup(b *strings.Builder, args *[]any, filters []Filter, sep, empty string) error {
	if len(filters) == 0 {
		b.WriteString(empty)
		return nil
	}
	b.WriteString("(")
	for i, f := range filters {
		if i > 0 {
			b.WriteString(sep)
		}
		if err := f.appendSQL(b, args); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

// FilterSQL renders a filter to a SQL condition and its arguments.
// A nil filter matches every document.
func FilterSQL(f Filter) (string, []any, error) {
	if f == nil {
		return "1=1", nil, nil
	}
	var b strings.Builder
	var args []any
	if err := f.appendSQL(&b, &args); err != nil {
		return "", nil, err
	}
	return b.String(), args, nil
}

// escapeLike escapes LIKE wildcards in a substring so user input matches
// literally. The empty string stays empty and therefore matches everything.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
