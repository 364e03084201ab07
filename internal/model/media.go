// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Media represents an image in the media library. Articles reference at most
// one media row as their thumbnail; the file itself lives behind the URL.
type Media struct {
	ID        int64         `json:"id"`
	URL       string        `json:"url"`
	Alt       string        `json:"alt,omitempty"`
	Width     sql.NullInt64 `json:"width,omitempty"`
	Height    sql.NullInt64 `json:"height,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AltText returns the alt text, falling back to the given default.
func (m *Media) AltText(fallback string) string {
	if m.Alt != "" {
		return m.Alt
	}
	return fallback
}
