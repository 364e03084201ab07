// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"io"
	"log/slog"
	"testing"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New("ko", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestT(t *testing.T) {
	c := newTestCatalog(t)

	if got := c.T("ko", "nav.home"); got != "홈" {
		t.Errorf("T(ko, nav.home) = %q", got)
	}
	if got := c.T("en", "nav.home"); got != "Home" {
		t.Errorf("T(en, nav.home) = %q", got)
	}
}

func TestTFallsBackToDefaultLanguage(t *testing.T) {
	c := newTestCatalog(t)

	// Unknown language falls back to the default catalog.
	if got := c.T("fr", "nav.home"); got != "홈" {
		t.Errorf("T(fr, nav.home) = %q, want default language translation", got)
	}
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	c := newTestCatalog(t)
	if got := c.T("ko", "no.such.key"); got != "no.such.key" {
		t.Errorf("T(ko, no.such.key) = %q", got)
	}
}

func TestTFormatsArguments(t *testing.T) {
	c := newTestCatalog(t)
	if got := c.T("ko", "category.title", "경제"); got != "경제 관련 기사" {
		t.Errorf("T(ko, category.title, 경제) = %q", got)
	}
}

func TestMatch(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		header string
		want   string
	}{
		{"", "ko"},
		{"ko-KR,ko;q=0.9", "ko"},
		{"en-US,en;q=0.9", "en"},
		{"en-GB", "en"},
		{"fr-FR,fr;q=0.9", "ko"},
		{"garbage;;;", "ko"},
	}
	for _, tt := range tests {
		if got := c.Match(tt.header); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
