// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dongaedu/edunews/internal/repo"
	"github.com/dongaedu/edunews/internal/store"
)

// Subscribe handles a newsletter signup form post. On success the subscriber
// is created pending and the verification link would go out by mail; until a
// mailer is wired up the token round-trip is exercised through the admin API.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.subscribeResult(w, r, "subscribe.invalid")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	name := strings.TrimSpace(r.PostFormValue("name"))
	if _, err := mail.ParseAddress(email); err != nil {
		h.subscribeResult(w, r, "subscribe.invalid")
		return
	}

	_, err := h.subscribers.Subscribe(r.Context(), email, name)
	switch {
	case errors.Is(err, repo.ErrAlreadySubscribed):
		h.subscribeResult(w, r, "subscribe.duplicate")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.logger.Info("subscriber signed up", "category", "subscriber")
		h.subscribeResult(w, r, "subscribe.pending")
	}
}

// SubscribeVerify activates a subscription from its emailed token link.
func (h *Handler) SubscribeVerify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.subscribeResult(w, r, "subscribe.invalid")
		return
	}

	_, err := h.subscribers.Verify(r.Context(), token)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.subscribeResult(w, r, "subscribe.invalid")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.subscribeResult(w, r, "subscribe.verified")
	}
}

// Unsubscribe removes an email from the newsletter. It answers the same way
// whether or not the email was subscribed, so the form cannot be used to
// probe for addresses.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.subscribeResult(w, r, "subscribe.invalid")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	if _, err := mail.ParseAddress(email); err != nil {
		h.subscribeResult(w, r, "subscribe.invalid")
		return
	}

	err := h.subscribers.Unsubscribe(r.Context(), email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	h.subscribeResult(w, r, "subscribe.unsubscribed")
}

func (h *Handler) subscribeResult(w http.ResponseWriter, r *http.Request, key string) {
	data := struct {
		PageData
		Message string
	}{PageData: h.pageData(r)}
	data.Title = h.catalog.T(data.Lang, "subscribe.title")
	data.Message = h.catalog.T(data.Lang, key)
	h.renderer.Render(w, "subscribe", http.StatusOK, data)
}
