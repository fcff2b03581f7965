// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// EventDateLayout is the wire format for event dates (date only, no time).
const EventDateLayout = "2006-01-02"

// Event represents a school event announced on the public site.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	EventTime   string    `json:"event_time,omitempty"`
	Location    string    `json:"location,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsUpcoming reports whether the event is on or after the given day.
// Comparison is by calendar date, not instant.
func (e Event) IsUpcoming(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !e.EventDate.Before(today)
}
