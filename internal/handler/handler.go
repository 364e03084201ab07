// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler wires HTTP requests to the repositories and templates. The
// public pages render HTML; the admin surface under /admin/api speaks JSON.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/dongaedu/edunews/internal/i18n"
	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/render"
	"github.com/dongaedu/edunews/internal/repo"
	"github.com/dongaedu/edunews/internal/store"
	"github.com/dongaedu/edunews/internal/uikit"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	renderer    *render.Renderer
	catalog     *i18n.Catalog
	logger      *slog.Logger
	sessions    *scs.SessionManager
	articles    *repo.ArticleRepo
	subscribers *repo.SubscriberRepo
	media       *store.MediaStore
	users       *store.UserStore
	siteName    string
}

// Config holds handler configuration.
type Config struct {
	Renderer    *render.Renderer
	Catalog     *i18n.Catalog
	Logger      *slog.Logger
	Sessions    *scs.SessionManager
	Articles    *repo.ArticleRepo
	Subscribers *repo.SubscriberRepo
	Media       *store.MediaStore
	Users       *store.UserStore
	SiteName    string
}

// New creates a Handler.
func New(cfg Config) *Handler {
	return &Handler{
		renderer:    cfg.Renderer,
		catalog:     cfg.Catalog,
		logger:      cfg.Logger,
		sessions:    cfg.Sessions,
		articles:    cfg.Articles,
		subscribers: cfg.Subscribers,
		media:       cfg.Media,
		users:       cfg.Users,
		siteName:    cfg.SiteName,
	}
}

// lang negotiates the response language from the Accept-Language header, with
// an explicit ?lang= override for testing translations.
func (h *Handler) lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		for _, s := range i18n.SupportedLanguages {
			if l == s {
				return l
			}
		}
	}
	return h.catalog.Match(r.Header.Get("Accept-Language"))
}

// navItem is one link in the header or footer navigation.
type navItem struct {
	Slug  string
	Label string
}

// pageData carries the fields every template reads through the base layout.
type PageData struct {
	Lang            string
	Title           string
	SiteName        string
	MetaDescription string
	Query           string
	Categories      []navItem
	Regions         []navItem
	Year            int
}

func (h *Handler) pageData(r *http.Request) PageData {
	cats := make([]navItem, 0, 3)
	for _, c := range model.Categories() {
		cats = append(cats, navItem{Slug: string(c), Label: c.Label()})
	}
	regions := make([]navItem, 0, 5)
	for _, reg := range model.Regions() {
		regions = append(regions, navItem{Slug: string(reg), Label: reg.Label()})
	}
	return PageData{
		Lang:       h.lang(r),
		SiteName:   h.siteName,
		Categories: cats,
		Regions:    regions,
		Year:       time.Now().Year(),
	}
}

// thumbView is the template shape of an article thumbnail.
type thumbView struct {
	URL string
	Alt string
}

// cardView is the template shape of one article in a listing.
type cardView struct {
	Lang          string
	Title         string
	URL           string
	Summary       string
	CategoryLabel string
	RegionLabel   string
	PublishedAt   *time.Time
	Thumbnail     *thumbView
}

// articleView is the template shape of the article detail page.
type articleView struct {
	Title         string
	CategoryLabel string
	RegionLabel   string
	Author        string
	PublishedAt   *time.Time
	ViewCount     int64
	Summary       string
	Content       string
	Tags          []string
	Thumbnail     *thumbView
}

func newThumbView(m *model.Media, title string) *thumbView {
	if m == nil {
		return nil
	}
	return &thumbView{URL: m.URL, Alt: m.AltText(title)}
}

func (h *Handler) newCardView(a model.Article, lang string) cardView {
	v := cardView{
		Lang:          lang,
		Title:         a.Title,
		URL:           "/articles/" + a.Slug,
		Summary:       a.Summary,
		CategoryLabel: a.Category.Label(),
		RegionLabel:   a.Region.Label(),
		Thumbnail:     newThumbView(a.Thumbnail, a.Title),
	}
	if a.PublishedAt.Valid {
		t := a.PublishedAt.Time
		v.PublishedAt = &t
	}
	return v
}

func (h *Handler) newCardViews(docs []model.Article, lang string) []cardView {
	cards := make([]cardView, 0, len(docs))
	for _, a := range docs {
		cards = append(cards, h.newCardView(a, lang))
	}
	return cards
}

func newArticleView(a model.Article) articleView {
	v := articleView{
		Title:         a.Title,
		CategoryLabel: a.Category.Label(),
		RegionLabel:   a.Region.Label(),
		Author:        a.Author,
		ViewCount:     a.ViewCount,
		Summary:       a.Summary,
		Content:       a.Content,
		Tags:          a.Tags,
		Thumbnail:     newThumbView(a.Thumbnail, a.Title),
	}
	if a.PublishedAt.Valid {
		t := a.PublishedAt.Time
		v.PublishedAt = &t
	}
	return v
}

// buildPagination converts a paginated store result into the template control.
func buildPagination[T any](p store.Paginated[T], basePath, extraQuery string) uikit.Pagination {
	return uikit.BuildPagination(p.Page, p.TotalPages, p.TotalDocs, p.Limit, basePath, extraQuery)
}

// writeJSON writes v as a JSON response with the given status.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeJSONError writes a JSON error body with the given status.
func (h *Handler) writeJSONError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v, limiting its size.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
