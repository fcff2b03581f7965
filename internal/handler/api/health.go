// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/malumbo/academy/internal/version"
)

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Slides    int64            `json:"slides"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbCheck := Check{Status: "healthy"}
	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		dbCheck.Status = "unhealthy"
		dbCheck.Message = err.Error()
	}
	dbCheck.Latency = time.Since(start).Round(time.Microsecond).String()

	var slideCount int64
	if stats, err := h.store.CountStats(ctx); err == nil {
		slideCount = stats.Slides
	}

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    fmt.Sprintf("%.0fs", time.Since(h.startTime).Seconds()),
		Version:   version.Version,
		Checks:    map[string]Check{"database": dbCheck},
		Slides:    slideCount,
	}

	code := http.StatusOK
	if dbCheck.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, status)
}
