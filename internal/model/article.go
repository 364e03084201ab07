// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Article statuses
const (
	StatusDraft     = Status("draft")
	StatusPublished = Status("published")
	StatusArchived  = Status("archived")
)

// Status is the lifecycle state of an article.
type Status string

// Valid reports whether s is one of the known article statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown article status %q", s)
	}
	return st, nil
}

// Article categories
const (
	CategoryEconomy = Category("economy")
	CategorySociety = Category("society")
	CategoryCulture = Category("culture")
)

// Category is the editorial section an article belongs to.
type Category string

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{CategoryEconomy, CategorySociety, CategoryCulture}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEconomy, CategorySociety, CategoryCulture:
		return true
	}
	return false
}

// ParseCategory converts a string to a Category, rejecting unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Coverage regions
const (
	RegionSeoulGyeonggi      = Region("seoul-gyeonggi")
	RegionDaejeonChungcheong = Region("daejeon-chungcheong")
	RegionGwangjuJeolla      = Region("gwangju-jeolla")
	RegionBusanGyeongnam     = Region("busan-gyeongnam")
	RegionDaeguGyeongbuk     = Region("daegu-gyeongbuk")
)

// Region is the geographic coverage area of an article.
type Region string

// Regions lists all regions in display order.
func Regions() []Region {
	return []Region{
		RegionSeoulGyeonggi,
		RegionDaejeonChungcheong,
		RegionGwangjuJeolla,
		RegionBusanGyeongnam,
		RegionDaeguGyeongbuk,
	}
}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	switch r {
	case RegionSeoulGyeonggi, RegionDaejeonChungcheong, RegionGwangjuJeolla,
		RegionBusanGyeongnam, RegionDaeguGyeongbuk:
		return true
	}
	return false
}

// ParseRegion converts a string to a Region, rejecting unknown values.
func ParseRegion(s string) (Region, error) {
	r := Region(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown region %q", s)
	}
	return r, nil
}

// categoryLabels maps categories to their Korean display names.
var categoryLabels = map[Category]string{
	CategoryEconomy: "경제",
	CategorySociety: "사회",
	CategoryCulture: "문화",
}

// regionLabels maps regions to their Korean display names.
var regionLabels = map[Region]string{
	RegionSeoulGyeonggi:      "서울/경기",
	RegionDaejeonChungcheong: "대전/충청/강원",
	RegionGwangjuJeolla:      "광주/전라",
	RegionBusanGyeongnam:     "부산/경남",
	RegionDaeguGyeongbuk:     "대구/경북",
}

// Label returns the Korean display name of the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Label returns the Korean display name of the region.
func (r Region) Label() string {
	return regionLabels[r]
}

// Article represents a news article.
type Article struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Content     string        `json:"content"` // Markdown source
	Summary     string        `json:"summary"`
	Category    Category      `json:"category"`
	Region      Region        `json:"region"`
	Author      string        `json:"author"`
	ThumbnailID sql.NullInt64 `json:"thumbnail_id,omitempty"`
	Thumbnail   *Media        `json:"thumbnail,omitempty"`
	Tags        []string      `json:"tags"`
	Status      Status        `json:"status"`
	PublishedAt sql.NullTime  `json:"published_at,omitempty"`
	ViewCount   int64         `json:"view_count"`
	LegacyID    sql.NullInt64 `json:"legacy_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsPublished returns true if the article is published.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// IsDraft returns true if the article is a draft.
func (a *Article) IsDraft() bool {
	return a.Status == StatusDraft
}

// Validate checks the fields that the store cannot enforce by type alone.
func (a *Article) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("article title is required")
	}
	if a.Slug == "" {
		return fmt.Errorf("article slug is required")
	}
	if a.Category != "" && !a.Category.Valid() {
		return fmt.Errorf("unknown category %q", a.Category)
	}
	if a.Region != "" && !a.Region.Valid() {
		return fmt.Errorf("unknown region %q", a.Region)
	}
	if a.Status != "" && !a.Status.Valid() {
		return fmt.Errorf("unknown article status %q", a.Status)
	}
	if a.ViewCount < 0 {
		return fmt.Errorf("view count must not be negative")
	}
	return nil
}
