// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/repo"
	"github.com/dongaedu/edunews/internal/uikit"
)

const (
	homeLatestCount  = 6
	homeSectionCount = 4
)

// homeSection is one per-category strip on the home page.
type homeSection struct {
	Slug     string
	Label    string
	Articles []cardView
}

// Home renders the front page: the latest articles plus a short strip per
// category.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := struct {
		PageData
		Latest   []cardView
		Sections []homeSection
	}{PageData: h.pageData(r)}

	latest, err := h.articles.FindAll(r.Context(), repo.QueryOptions{Limit: homeLatestCount})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Latest = h.newCardViews(latest.Docs, data.Lang)

	for _, c := range model.Categories() {
		page, err := h.articles.FindByCategory(r.Context(), c, repo.QueryOptions{Limit: homeSectionCount})
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		data.Sections = append(data.Sections, homeSection{
			Slug:     string(c),
			Label:    c.Label(),
			Articles: h.newCardViews(page.Docs, data.Lang),
		})
	}

	h.renderer.Render(w, "home", http.StatusOK, data)
}

// Articles renders the paginated list of all published articles.
func (h *Handler) Articles(w http.ResponseWriter, r *http.Request) {
	data := struct {
		PageData
		Articles   []cardView
		Pagination uikit.Pagination
	}{PageData: h.pageData(r)}
	data.Title = h.catalog.T(data.Lang, "articles.title")

	page, err := h.articles.FindAll(r.Context(), repo.QueryOptions{Page: uikit.ParsePageParam(r)})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Articles = h.newCardViews(page.Docs, data.Lang)
	data.Pagination = buildPagination(page, "/articles", "")

	h.renderer.Render(w, "articles", http.StatusOK, data)
}

// Article renders the detail page for one article, looked up by slug. Only
// published articles are shown; anything else looks like a missing page. The
// view counter is bumped in the background so a slow write never delays the
// response.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	a, err := h.articles.FindBySlug(r.Context(), slug)
	if err != nil || !a.IsPublished() {
		h.NotFound(w, r)
		return
	}

	go func(id int64) {
		if err := h.articles.IncrementViewCount(context.Background(), id); err != nil {
			h.logger.Warn("failed to increment view count", "article_id", id, "error", err)
		}
	}(a.ID)

	data := struct {
		PageData
		Article articleView
	}{PageData: h.pageData(r), Article: newArticleView(a)}
	data.Title = a.Title
	data.MetaDescription = a.Summary

	h.renderer.Render(w, "article", http.StatusOK, data)
}

// LegacyArticle redirects an old numeric article URL to the slug URL.
func (h *Handler) LegacyArticle(w http.ResponseWriter, r *http.Request) {
	legacyID, err := strconv.ParseInt(chi.URLParam(r, "legacyId"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	a, err := h.articles.FindByLegacyID(r.Context(), legacyID)
	if err != nil || !a.IsPublished() {
		h.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/articles/"+a.Slug, http.StatusMovedPermanently)
}

// Category renders the paginated archive for one category.
func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	category, err := model.ParseCategory(chi.URLParam(r, "slug"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	data := struct {
		PageData
		Heading     string
		Description string
		Articles    []cardView
		Pagination  uikit.Pagination
	}{PageData: h.pageData(r)}
	data.Heading = category.Label()
	data.Title = h.catalog.T(data.Lang, "category.title", category.Label())

	page, err := h.articles.FindByCategory(r.Context(), category, repo.QueryOptions{Page: uikit.ParsePageParam(r)})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Articles = h.newCardViews(page.Docs, data.Lang)
	data.Pagination = buildPagination(page, "/category/"+string(category), "")

	h.renderer.Render(w, "archive", http.StatusOK, data)
}

// Region renders the paginated archive for one coverage region.
func (h *Handler) Region(w http.ResponseWriter, r *http.Request) {
	region, err := model.ParseRegion(chi.URLParam(r, "slug"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	data := struct {
		PageData
		Heading     string
		Description string
		Articles    []cardView
		Pagination  uikit.Pagination
	}{PageData: h.pageData(r)}
	data.Heading = region.Label()
	data.Title = h.catalog.T(data.Lang, "region.title", region.Label())

	page, err := h.articles.FindByRegion(r.Context(), region, repo.QueryOptions{Page: uikit.ParsePageParam(r)})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Articles = h.newCardViews(page.Docs, data.Lang)
	data.Pagination = buildPagination(page, "/region/"+string(region), "")

	h.renderer.Render(w, "archive", http.StatusOK, data)
}

// Search renders full-text search results over title, summary and content.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := struct {
		PageData
		Articles   []cardView
		Pagination uikit.Pagination
	}{PageData: h.pageData(r)}
	data.Query = query
	data.Title = h.catalog.T(data.Lang, "search.title")

	page, err := h.articles.Search(r.Context(), query, repo.QueryOptions{Page: uikit.ParsePageParam(r)})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Articles = h.newCardViews(page.Docs, data.Lang)
	data.Pagination = buildPagination(page, "/search", "q="+url.QueryEscape(query))

	h.renderer.Render(w, "search", http.StatusOK, data)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := struct{ PageData }{PageData: h.pageData(r)}
	data.Title = h.catalog.T(data.Lang, "notfound.title")
	h.renderer.Render(w, "notfound", http.StatusNotFound, data)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
