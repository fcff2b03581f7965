// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides REST API handlers for the public site and the
// admin back office.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/cache"
	"github.com/malumbo/academy/internal/config"
	"github.com/malumbo/academy/internal/store"
)

// Public listing caps, matching what the site renders.
const (
	publicEventsLimit  = 10
	publicGalleryLimit = 20
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store     store.Store
	cache     cache.Cache
	cacheTTL  time.Duration
	tokens    *auth.TokenManager // nil in credentials mode
	cfg       *config.Config
	sanitizer *bluemonday.Policy
	startTime time.Time
}

// NewHandler creates a new API handler. tokens may be nil when the
// server runs in credentials mode.
func NewHandler(st store.Store, c cache.Cache, tokens *auth.TokenManager, cfg *config.Config) *Handler {
	return &Handler{
		store:     st,
		cache:     c,
		cacheTTL:  time.Duration(cfg.CacheTTL) * time.Second,
		tokens:    tokens,
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
		startTime: time.Now(),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any `json:"data,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Data: data})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteValidationError writes a 400 response with per-field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// parseIDParam extracts the {id} URL parameter as an int64.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if
// an error response was already written. The entityName is used for
// error messages (e.g., "slide", "event", "gallery image").
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}

	return entity, true
}

// deleteEntityByID parses an ID from the URL and deletes the entity,
// responding 204 on success and 404 when the row does not exist.
func deleteEntityByID(w http.ResponseWriter, r *http.Request, entityName string, remove func(id int64) error) bool {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return false
	}

	if err := remove(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to delete "+entityName)
		}
		return false
	}

	w.WriteHeader(http.StatusNoContent)
	return true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// cachedList serves a public listing through the cache. On a miss the
// fetch result is marshaled and stored under key; cache errors degrade
// to a direct store read.
func (h *Handler) cachedList(ctx context.Context, key string, fetch func() (any, error)) (json.RawMessage, error) {
	if cached, err := h.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if err := h.cache.Set(ctx, key, encoded, h.cacheTTL); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
	return encoded, nil
}

// invalidate drops a cached public listing after an admin write.
func (h *Handler) invalidate(ctx context.Context, key string) {
	if err := h.cache.Delete(ctx, key); err != nil {
		slog.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
