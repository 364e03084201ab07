// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded templates once at startup and renders
// pages through a buffer so a template error never produces a half-written
// response.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/dongaedu/edunews/internal/i18n"
)

// Renderer handles template rendering.
type Renderer struct {
	templates map[string]*template.Template
	catalog   *i18n.Catalog
	logger    *slog.Logger
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Catalog     *i18n.Catalog
	Logger      *slog.Logger
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		catalog:   cfg.Catalog,
		logger:    cfg.Logger,
		markdown:  goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all page templates against the base layout and partials.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := fs.Glob(templatesFS, "templates/partials/*.html")
	if err != nil {
		return fmt.Errorf("globbing partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return fmt.Errorf("globbing pages: %w", err)
	}

	baseLayout := "templates/layouts/base.html"

	for _, pagePath := range pages {
		name := strings.TrimSuffix(filepath.Base(pagePath), ".html")

		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, pagePath)

		tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

// templateFuncs returns the function map available to all templates.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": func(lang, key string, args ...any) string {
			return r.catalog.T(lang, key, args...)
		},
		"markdown":   r.Markdown,
		"dateMedium": dateMedium,
		"comma":      comma,
	}
}

// Markdown renders Markdown source to sanitized HTML.
func (r *Renderer) Markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		r.logger.Error("failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes()))
}

// Render writes the named template with data, or a 500 if rendering fails.
func (r *Renderer) Render(w http.ResponseWriter, name string, status int, data any) {
	tmpl, ok := r.templates[name]
	if !ok {
		r.logger.Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		r.logger.Error("failed to render template", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// dateMedium formats a time as a medium-length date for the given language.
func dateMedium(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if lang == "ko" {
		return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
	}
	return t.Format("January 2, 2006")
}

// comma formats an integer with thousands separators.
func comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
