// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/config"
	"github.com/malumbo/academy/internal/middleware"
)

// Per-IP limits for the abuse-prone public endpoints.
const (
	loginRateLimit   = 1.0
	loginBurst       = 5
	contactRateLimit = 0.5
	contactBurst     = 3
)

// NewRouter builds the /api route tree. tokens may be nil when the
// server runs in credentials mode; admin routes are then left open,
// which is logged loudly at startup.
func NewRouter(h *Handler, cfg *config.Config, tokens *auth.TokenManager) chi.Router {
	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginBurst)
	contactLimiter := middleware.NewRateLimiter(contactRateLimit, contactBurst)

	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/slides", h.ListActiveSlides)
	r.Get("/events", h.ListUpcomingEvents)
	r.Get("/gallery", h.ListPublicGallery)
	r.With(contactLimiter.Middleware()).Post("/contact", h.CreateContactMessage)

	r.Route("/admin", func(r chi.Router) {
		r.With(loginLimiter.Middleware()).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			if cfg.TokenAuth() {
				r.Use(middleware.TokenAuth(tokens))
			} else {
				slog.Warn("credentials mode: admin routes are NOT authenticated; use token mode outside development")
			}

			r.Get("/slides", h.ListSlides)
			r.Post("/slides", h.CreateSlide)
			r.Get("/slides/{id}", h.GetSlide)
			r.Put("/slides/{id}", h.UpdateSlide)
			r.Delete("/slides/{id}", h.DeleteSlide)

			r.Get("/events", h.ListEvents)
			r.Post("/events", h.CreateEvent)
			r.Get("/events/{id}", h.GetEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)

			r.Get("/gallery", h.ListGalleryImages)
			r.Post("/gallery", h.CreateGalleryImage)
			r.Post("/gallery/upload", h.UploadGalleryImage)
			r.Delete("/gallery/{id}", h.DeleteGalleryImage)

			r.Get("/messages", h.ListContactMessages)
			r.Put("/messages/{id}/read", h.MarkMessageRead)

			r.Get("/stats", h.GetStats)
		})
	})

	return r
}
