// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dongaedu/edunews/internal/auth"
	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/repo"
	"github.com/dongaedu/edunews/internal/session"
	"github.com/dongaedu/edunews/internal/store"
	"github.com/dongaedu/edunews/internal/util"
)

// Login authenticates an editor and starts a session. The error message is
// identical for an unknown email and a wrong password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Warn("login failed", "category", "auth", "email", req.Email)
		h.writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.logger.Warn("login failed", "category", "auth", "email", req.Email)
		h.writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.sessions.Put(r.Context(), session.UserIDKey, user.ID)

	h.logger.Info("editor logged in", "category", "auth", "user_id", user.ID)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AdminListArticles lists articles for the editor. Unlike the public pages
// the status is taken from the query string, so drafts and archived articles
// are reachable; it still defaults to published.
func (h *Handler) AdminListArticles(w http.ResponseWriter, r *http.Request) {
	opts := repo.QueryOptions{Page: parseIntParam(r, "page", 1)}

	if s := r.URL.Query().Get("status"); s != "" {
		status, err := model.ParseStatus(s)
		if err != nil {
			h.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Status = status
	}
	if c := r.URL.Query().Get("category"); c != "" {
		category, err := model.ParseCategory(c)
		if err != nil {
			h.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Category = category
	}
	if limit := parseIntParam(r, "limit", 0); limit > 0 && limit <= 100 {
		opts.Limit = limit
	}

	page, err := h.articles.FindAll(r.Context(), opts)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// articleInput is the JSON body for creating an article.
type articleInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	Category    string   `json:"category"`
	Region      string   `json:"region"`
	Author      string   `json:"author"`
	ThumbnailID *int64   `json:"thumbnail_id"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	PublishedAt *string  `json:"published_at"`
	LegacyID    *int64   `json:"legacy_id"`
}

// AdminCreateArticle creates an article. A missing slug is derived from the
// title; a missing status means draft.
func (h *Handler) AdminCreateArticle(w http.ResponseWriter, r *http.Request) {
	var in articleInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a := model.Article{
		Title:    in.Title,
		Slug:     in.Slug,
		Content:  in.Content,
		Summary:  in.Summary,
		Category: model.Category(in.Category),
		Region:   model.Region(in.Region),
		Author:   in.Author,
		Tags:     in.Tags,
		Status:   model.Status(in.Status),
	}
	if a.Slug == "" {
		a.Slug = util.Slugify(a.Title)
	}
	if !util.IsValidSlug(a.Slug) {
		h.writeJSONError(w, http.StatusBadRequest, "invalid slug")
		return
	}
	if in.ThumbnailID != nil {
		a.ThumbnailID = sql.NullInt64{Int64: *in.ThumbnailID, Valid: true}
	}
	if in.LegacyID != nil {
		a.LegacyID = sql.NullInt64{Int64: *in.LegacyID, Valid: true}
	}
	if in.PublishedAt != nil {
		t, err := time.Parse(time.RFC3339, *in.PublishedAt)
		if err != nil {
			h.writeJSONError(w, http.StatusBadRequest, "published_at must be RFC 3339")
			return
		}
		a.PublishedAt = sql.NullTime{Time: t.UTC(), Valid: true}
	}

	created, err := h.articles.Save(r.Context(), a)
	if err != nil {
		h.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("article created", "category", "article", "article_id", created.ID)
	h.writeJSON(w, http.StatusCreated, created)
}

// AdminGetArticle returns one article, regardless of status.
func (h *Handler) AdminGetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSONError(w, http.StatusNotFound, "article not found")
		return
	}

	a, err := h.articles.FindByID(r.Context(), id)
	if err != nil {
		h.writeJSONError(w, http.StatusNotFound, "article not found")
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// articleUpdateInput is the JSON body for a partial article update. Absent
// fields are left untouched.
type articleUpdateInput struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Content     *string   `json:"content"`
	Summary     *string   `json:"summary"`
	Category    *string   `json:"category"`
	Region      *string   `json:"region"`
	Author      *string   `json:"author"`
	ThumbnailID *int64    `json:"thumbnail_id"`
	Tags        *[]string `json:"tags"`
	Status      *string   `json:"status"`
	PublishedAt *string   `json:"published_at"`
}

// AdminUpdateArticle applies a partial update to an article.
func (h *Handler) AdminUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSONError(w, http.StatusNotFound, "article not found")
		return
	}

	var in articleUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	change := store.ArticleChange{
		Title:   in.Title,
		Slug:    in.Slug,
		Content: in.Content,
		Summary: in.Summary,
		Author:  in.Author,
		Tags:    in.Tags,
	}
	if in.Slug != nil && !util.IsValidSlug(*in.Slug) {
		h.writeJSONError(w, http.StatusBadRequest, "invalid slug")
		return
	}
	if in.Category != nil {
		c := model.Category(*in.Category)
		change.Category = &c
	}
	if in.Region != nil {
		reg := model.Region(*in.Region)
		change.Region = &reg
	}
	if in.Status != nil {
		s := model.Status(*in.Status)
		change.Status = &s
	}
	if in.ThumbnailID != nil {
		change.ThumbnailID = &sql.NullInt64{Int64: *in.ThumbnailID, Valid: true}
	}
	if in.PublishedAt != nil {
		t, err := time.Parse(time.RFC3339, *in.PublishedAt)
		if err != nil {
			h.writeJSONError(w, http.StatusBadRequest, "published_at must be RFC 3339")
			return
		}
		change.PublishedAt = &sql.NullTime{Time: t.UTC(), Valid: true}
	}

	updated, err := h.articles.Update(r.Context(), id, change)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeJSONError(w, http.StatusNotFound, "article not found")
	case err != nil:
		h.writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Info("article updated", "category", "article", "article_id", id)
		h.writeJSON(w, http.StatusOK, updated)
	}
}

// AdminDeleteArticle removes an article.
func (h *Handler) AdminDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSONError(w, http.StatusNotFound, "article not found")
		return
	}

	switch err := h.articles.Delete(r.Context(), id); {
	case errors.Is(err, store.ErrNotFound):
		h.writeJSONError(w, http.StatusNotFound, "article not found")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.logger.Info("article deleted", "category", "article", "article_id", id)
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// AdminCreateMedia registers an uploaded image by URL so articles can
// reference it as a thumbnail.
func (h *Handler) AdminCreateMedia(w http.ResponseWriter, r *http.Request) {
	var in struct {
		URL    string `json:"url"`
		Alt    string `json:"alt"`
		Width  *int64 `json:"width"`
		Height *int64 `json:"height"`
	}
	if err := decodeJSON(r, &in); err != nil {
		h.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.URL == "" {
		h.writeJSONError(w, http.StatusBadRequest, "url is required")
		return
	}

	m := model.Media{URL: in.URL, Alt: in.Alt}
	if in.Width != nil {
		m.Width = sql.NullInt64{Int64: *in.Width, Valid: true}
	}
	if in.Height != nil {
		m.Height = sql.NullInt64{Int64: *in.Height, Valid: true}
	}

	created, err := h.media.Create(r.Context(), m)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// AdminListSubscribers lists newsletter subscribers, optionally filtered by
// status.
func (h *Handler) AdminListSubscribers(w http.ResponseWriter, r *http.Request) {
	var status model.SubscriberStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := model.ParseSubscriberStatus(s)
		if err != nil {
			h.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}

	limit := parseIntParam(r, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := parseIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	subs, err := h.subscribers.List(r.Context(), status, limit, offset)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, subs)
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
