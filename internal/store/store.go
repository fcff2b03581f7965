// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the persistence layer for all site content.
// The Store interface is backend-agnostic; the backend (in-memory,
// SQLite or MySQL) is selected by configuration at startup and injected
// into the HTTP handlers.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/malumbo/academy/internal/model"
)

// ErrNotFound is returned when a row does not exist. Backends map their
// native miss (e.g. sql.ErrNoRows) to this sentinel so handlers can use
// errors.Is regardless of the configured backend.
var ErrNotFound = errors.New("store: not found")

// CreateSlideParams holds the fields for creating a slide.
// The store assigns ID, CreatedAt and UpdatedAt.
type CreateSlideParams struct {
	Title        string
	Description  string
	ImageURL     string
	DisplayOrder int64
	IsActive     bool
}

// UpdateSlideParams holds the full field set for updating a slide.
// Handlers merge the existing row with the requested changes before
// calling UpdateSlide; the store refreshes UpdatedAt.
type UpdateSlideParams struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     string
	DisplayOrder int64
	IsActive     bool
}

// CreateEventParams holds the fields for creating an event.
type CreateEventParams struct {
	Title       string
	Description string
	EventDate   time.Time
	EventTime   string
	Location    string
	IsPublished bool
}

// UpdateEventParams holds the full field set for updating an event.
type UpdateEventParams struct {
	ID          int64
	Title       string
	Description string
	EventDate   time.Time
	EventTime   string
	Location    string
	IsPublished bool
}

// CreateGalleryImageParams holds the fields for creating a gallery image.
type CreateGalleryImageParams struct {
	ImageURL   string
	ThumbURL   string
	Caption    string
	Category   string
	IsFeatured bool
}

// CreateContactMessageParams holds the fields for a contact submission.
type CreateContactMessageParams struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// CreateUserParams holds the fields for creating a back-office user.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Email        string
	Role         string
}

// Store is the persistence contract shared by all backends.
// Every method performs a single logical read or write; no two calls
// are required to be atomic together.
type Store interface {
	CreateSlide(ctx context.Context, arg CreateSlideParams) (model.Slide, error)
	// ListActiveSlides returns slides with is_active=true, ordered by
	// display_order ascending then created_at descending.
	ListActiveSlides(ctx context.Context) ([]model.Slide, error)
	// ListSlides returns all slides in the same order, for the admin console.
	ListSlides(ctx context.Context) ([]model.Slide, error)
	GetSlide(ctx context.Context, id int64) (model.Slide, error)
	UpdateSlide(ctx context.Context, arg UpdateSlideParams) (model.Slide, error)
	DeleteSlide(ctx context.Context, id int64) error

	CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error)
	// ListUpcomingEvents returns published events on or after the given
	// day, ascending by date, at most limit rows.
	ListUpcomingEvents(ctx context.Context, from time.Time, limit int64) ([]model.Event, error)
	// ListEvents returns all events, newest date first, for the admin console.
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id int64) (model.Event, error)
	UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (model.GalleryImage, error)
	// ListGalleryImages returns images newest first. A limit <= 0 returns
	// all rows (admin listing).
	ListGalleryImages(ctx context.Context, limit int64) ([]model.GalleryImage, error)
	GetGalleryImage(ctx context.Context, id int64) (model.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id int64) error

	CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error)
	// ListContactMessages returns all messages, newest first.
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id int64) (model.ContactMessage, error)
	// PurgeReadMessagesBefore deletes read messages submitted before the
	// cutoff and returns the number of rows removed.
	PurgeReadMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error

	// CountStats returns the content counts for the admin dashboard.
	CountStats(ctx context.Context) (model.Stats, error)

	Ping(ctx context.Context) error
	Close() error
}
