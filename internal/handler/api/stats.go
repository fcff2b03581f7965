// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import "net/http"

// GetStats handles GET /api/admin/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.CountStats(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to count stats")
		return
	}
	WriteSuccess(w, stats)
}
