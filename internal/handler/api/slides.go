// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/malumbo/academy/internal/cache"
	"github.com/malumbo/academy/internal/model"
	"github.com/malumbo/academy/internal/store"
)

// CreateSlideRequest represents the request body for creating a slide.
type CreateSlideRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int64  `json:"display_order"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// UpdateSlideRequest represents the request body for updating a slide.
// Omitted fields keep their current value.
type UpdateSlideRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	DisplayOrder *int64  `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// ListActiveSlides handles GET /api/slides (public, cached).
func (h *Handler) ListActiveSlides(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.cachedList(ctx, cache.KeyActiveSlides, func() (any, error) {
		slides, err := h.store.ListActiveSlides(ctx)
		if err != nil {
			return nil, err
		}
		if slides == nil {
			slides = []model.Slide{}
		}
		return slides, nil
	})
	if err != nil {
		WriteInternalError(w, "Failed to list slides")
		return
	}

	WriteSuccess(w, data)
}

// ListSlides handles GET /api/admin/slides.
func (h *Handler) ListSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.store.ListSlides(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list slides")
		return
	}
	if slides == nil {
		slides = []model.Slide{}
	}
	WriteSuccess(w, slides)
}

// GetSlide handles GET /api/admin/slides/{id}.
func (h *Handler) GetSlide(w http.ResponseWriter, r *http.Request) {
	slide, ok := requireEntityByID(w, r, "slide", func(id int64) (model.Slide, error) {
		return h.store.GetSlide(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, slide)
}

// CreateSlide handles POST /api/admin/slides.
func (h *Handler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var req CreateSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.Title == "" {
		validationErrors["title"] = "Title is required"
	}
	if req.ImageURL == "" {
		validationErrors["image_url"] = "Image URL is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	// New slides default to active unless the request says otherwise.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	slide, err := h.store.CreateSlide(r.Context(), store.CreateSlideParams{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create slide")
		return
	}

	h.invalidate(r.Context(), cache.KeyActiveSlides)
	WriteCreated(w, slide)
}

// UpdateSlide handles PUT /api/admin/slides/{id}.
func (h *Handler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "slide", func(id int64) (model.Slide, error) {
		return h.store.GetSlide(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateSlideParams{
		ID:           existing.ID,
		Title:        existing.Title,
		Description:  existing.Description,
		ImageURL:     existing.ImageURL,
		DisplayOrder: existing.DisplayOrder,
		IsActive:     existing.IsActive,
	}
	if req.Title != nil {
		if *req.Title == "" {
			WriteValidationError(w, map[string]string{"title": "Title must not be empty"})
			return
		}
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			WriteValidationError(w, map[string]string{"image_url": "Image URL must not be empty"})
			return
		}
		params.ImageURL = *req.ImageURL
	}
	if req.DisplayOrder != nil {
		params.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	slide, err := h.store.UpdateSlide(ctx, params)
	if err != nil {
		// The row can vanish between the read and the write.
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Slide not found")
		} else {
			WriteInternalError(w, "Failed to update slide")
		}
		return
	}

	h.invalidate(ctx, cache.KeyActiveSlides)
	WriteSuccess(w, slide)
}

// DeleteSlide handles DELETE /api/admin/slides/{id}.
func (h *Handler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	if deleteEntityByID(w, r, "slide", func(id int64) error {
		return h.store.DeleteSlide(r.Context(), id)
	}) {
		h.invalidate(r.Context(), cache.KeyActiveSlides)
	}
}
