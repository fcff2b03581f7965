// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/malumbo/academy/internal/cache"
	"github.com/malumbo/academy/internal/model"
	"github.com/malumbo/academy/internal/store"
)

// CreateEventRequest represents the request body for creating an event.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	Location    string `json:"location"`
	IsPublished *bool  `json:"is_published,omitempty"`
}

// UpdateEventRequest represents the request body for updating an event.
// Omitted fields keep their current value.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EventDate   *string `json:"event_date,omitempty"`
	EventTime   *string `json:"event_time,omitempty"`
	Location    *string `json:"location,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

// ListUpcomingEvents handles GET /api/events (public, cached).
func (h *Handler) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.cachedList(ctx, cache.KeyUpcomingEvents, func() (any, error) {
		events, err := h.store.ListUpcomingEvents(ctx, time.Now(), publicEventsLimit)
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []model.Event{}
		}
		return events, nil
	})
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	WriteSuccess(w, data)
}

// ListEvents handles GET /api/admin/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	WriteSuccess(w, events)
}

// GetEvent handles GET /api/admin/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "event", func(id int64) (model.Event, error) {
		return h.store.GetEvent(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, event)
}

// CreateEvent handles POST /api/admin/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	validationErrors := make(map[string]string)
	if req.Title == "" {
		validationErrors["title"] = "Title is required"
	}
	if req.EventDate == "" {
		validationErrors["event_date"] = "Event date is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	eventDate, err := time.Parse(model.EventDateLayout, req.EventDate)
	if err != nil {
		WriteValidationError(w, map[string]string{
			"event_date": "Invalid date format. Use YYYY-MM-DD (e.g., 2026-03-15)",
		})
		return
	}

	// New events default to published unless the request says otherwise.
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	event, err := h.store.CreateEvent(r.Context(), store.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
		IsPublished: isPublished,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create event")
		return
	}

	h.invalidate(r.Context(), cache.KeyUpcomingEvents)
	WriteCreated(w, event)
}

// UpdateEvent handles PUT /api/admin/events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "event", func(id int64) (model.Event, error) {
		return h.store.GetEvent(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateEventParams{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		EventDate:   existing.EventDate,
		EventTime:   existing.EventTime,
		Location:    existing.Location,
		IsPublished: existing.IsPublished,
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
	if req.EventDate != nil {
		eventDate, err := time.Parse(model.EventDateLayout, *req.EventDate)
		if err != nil {
			WriteValidationError(w, map[string]string{
				"event_date": "Invalid date format. Use YYYY-MM-DD (e.g., 2026-03-15)",
			})
			return
		}
		params.EventDate = eventDate
	}
	if req.EventTime != nil {
		params.EventTime = *req.EventTime
	}
	if req.Location != nil {
		params.Location = *req.Location
	}
	if req.IsPublished != nil {
		params.IsPublished = *req.IsPublished
	}

	event, err := h.store.UpdateEvent(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Event not found")
		} else {
			WriteInternalError(w, "Failed to update event")
		}
		return
	}

	h.invalidate(ctx, cache.KeyUpcomingEvents)
	WriteSuccess(w, event)
}

// DeleteEvent handles DELETE /api/admin/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if deleteEntityByID(w, r, "event", func(id int64) error {
		return h.store.DeleteEvent(r.Context(), id)
	}) {
		h.invalidate(r.Context(), cache.KeyUpcomingEvents)
	}
}
