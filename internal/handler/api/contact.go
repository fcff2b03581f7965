// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/malumbo/academy/internal/model"
	"github.com/malumbo/academy/internal/store"
)

// CreateContactRequest represents a public contact form submission.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateContactMessage handles POST /api/contact (public, rate-limited).
func (h *Handler) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		validationErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		validationErrors["email"] = "Email is required"
	} else if !strings.Contains(req.Email, "@") {
		validationErrors["email"] = "Email is not valid"
	}
	if strings.TrimSpace(req.Message) == "" {
		validationErrors["message"] = "Message is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	// Submissions come from the open internet; strip any markup.
	message, err := h.store.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:    h.sanitizer.Sanitize(strings.TrimSpace(req.Name)),
		Email:   strings.TrimSpace(req.Email),
		Phone:   h.sanitizer.Sanitize(strings.TrimSpace(req.Phone)),
		Message: h.sanitizer.Sanitize(strings.TrimSpace(req.Message)),
	})
	if err != nil {
		WriteInternalError(w, "Failed to submit message")
		return
	}

	WriteCreated(w, message)
}

// ListContactMessages handles GET /api/admin/messages.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListContactMessages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}
	WriteSuccess(w, messages)
}

// MarkMessageRead handles PUT /api/admin/messages/{id}/read.
func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	message, ok := requireEntityByID(w, r, "message", func(id int64) (model.ContactMessage, error) {
		return h.store.MarkMessageRead(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, message)
}
