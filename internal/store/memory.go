// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/malumbo/academy/internal/model"
)

// Memory is the transient Store implementation used for development and
// tests. All state lives in maps guarded by a single mutex; ids are
// assigned from per-entity counters and are never reused, so they stay
// strictly increasing for the lifetime of the instance.
type Memory struct {
	mu sync.Mutex

	slides   map[int64]model.Slide
	events   map[int64]model.Event
	gallery  map[int64]model.GalleryImage
	messages map[int64]model.ContactMessage
	users    map[int64]model.User

	slideSeq   int64
	eventSeq   int64
	gallerySeq int64
	messageSeq int64
	userSeq    int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		slides:   make(map[int64]model.Slide),
		events:   make(map[int64]model.Event),
		gallery:  make(map[int64]model.GalleryImage),
		messages: make(map[int64]model.ContactMessage),
		users:    make(map[int64]model.User),
	}
}

func (m *Memory) Ping(context.Context) error { return nil }
func (m *Memory) Close() error               { return nil }

func (m *Memory) CreateSlide(_ context.Context, arg CreateSlideParams) (model.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slideSeq++
	now := time.Now().UTC()
	sl := model.Slide{
		ID:           m.slideSeq,
		Title:        arg.Title,
		Description:  arg.Description,
		ImageURL:     arg.ImageURL,
		DisplayOrder: arg.DisplayOrder,
		IsActive:     arg.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.slides[sl.ID] = sl
	return sl, nil
}

func (m *Memory) ListActiveSlides(context.Context) ([]model.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Slide{}
	for _, sl := range m.slides {
		if sl.IsActive {
			out = append(out, sl)
		}
	}
	sortSlides(out)
	return out, nil
}

func (m *Memory) ListSlides(context.Context) ([]model.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Slide, 0, len(m.slides))
	for _, sl := range m.slides {
		out = append(out, sl)
	}
	sortSlides(out)
	return out, nil
}

// sortSlides orders by display_order ascending, then newest first.
func sortSlides(slides []model.Slide) {
	sort.Slice(slides, func(i, j int) bool {
		if slides[i].DisplayOrder != slides[j].DisplayOrder {
			return slides[i].DisplayOrder < slides[j].DisplayOrder
		}
		if !slides[i].CreatedAt.Equal(slides[j].CreatedAt) {
			return slides[i].CreatedAt.After(slides[j].CreatedAt)
		}
		return slides[i].ID > slides[j].ID
	})
}

func (m *Memory) GetSlide(_ context.Context, id int64) (model.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sl, ok := m.slides[id]
	if !ok {
		return model.Slide{}, ErrNotFound
	}
	return sl, nil
}

func (m *Memory) UpdateSlide(_ context.Context, arg UpdateSlideParams) (model.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sl, ok := m.slides[arg.ID]
	if !ok {
		return model.Slide{}, ErrNotFound
	}
	sl.Title = arg.Title
	sl.Description = arg.Description
	sl.ImageURL = arg.ImageURL
	sl.DisplayOrder = arg.DisplayOrder
	sl.IsActive = arg.IsActive
	sl.UpdatedAt = time.Now().UTC()
	m.slides[sl.ID] = sl
	return sl, nil
}

func (m *Memory) DeleteSlide(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.slides[id]; !ok {
		return ErrNotFound
	}
	delete(m.slides, id)
	return nil
}

func (m *Memory) CreateEvent(_ context.Context, arg CreateEventParams) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eventSeq++
	now := time.Now().UTC()
	ev := model.Event{
		ID:          m.eventSeq,
		Title:       arg.Title,
		Description: arg.Description,
		EventDate:   arg.EventDate.UTC(),
		EventTime:   arg.EventTime,
		Location:    arg.Location,
		IsPublished: arg.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.events[ev.ID] = ev
	return ev, nil
}

func (m *Memory) ListUpcomingEvents(_ context.Context, from time.Time, limit int64) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	out := []model.Event{}
	for _, ev := range m.events {
		if ev.IsPublished && !ev.EventDate.Before(day) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) ListEvents(context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.After(out[j].EventDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) GetEvent(_ context.Context, id int64) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return ev, nil
}

func (m *Memory) UpdateEvent(_ context.Context, arg UpdateEventParams) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[arg.ID]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	ev.Title = arg.Title
	ev.Description = arg.Description
	ev.EventDate = arg.EventDate.UTC()
	ev.EventTime = arg.EventTime
	ev.Location = arg.Location
	ev.IsPublished = arg.IsPublished
	ev.UpdatedAt = time.Now().UTC()
	m.events[ev.ID] = ev
	return ev, nil
}

func (m *Memory) DeleteEvent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) CreateGalleryImage(_ context.Context, arg CreateGalleryImageParams) (model.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gallerySeq++
	category := arg.Category
	if category == "" {
		category = model.GalleryCategoryDefault
	}
	img := model.GalleryImage{
		ID:         m.gallerySeq,
		ImageURL:   arg.ImageURL,
		ThumbURL:   arg.ThumbURL,
		Caption:    arg.Caption,
		Category:   category,
		IsFeatured: arg.IsFeatured,
		UploadedAt: time.Now().UTC(),
	}
	m.gallery[img.ID] = img
	return img, nil
}

func (m *Memory) ListGalleryImages(_ context.Context, limit int64) ([]model.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.GalleryImage, 0, len(m.gallery))
	for _, img := range m.gallery {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) GetGalleryImage(_ context.Context, id int64) (model.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	img, ok := m.gallery[id]
	if !ok {
		return model.GalleryImage{}, ErrNotFound
	}
	return img, nil
}

func (m *Memory) DeleteGalleryImage(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.gallery[id]; !ok {
		return ErrNotFound
	}
	delete(m.gallery, id)
	return nil
}

func (m *Memory) CreateContactMessage(_ context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messageSeq++
	msg := model.ContactMessage{
		ID:          m.messageSeq,
		Name:        arg.Name,
		Email:       arg.Email,
		Phone:       arg.Phone,
		Message:     arg.Message,
		IsRead:      false,
		SubmittedAt: time.Now().UTC(),
	}
	m.messages[msg.ID] = msg
	return msg, nil
}

func (m *Memory) ListContactMessages(context.Context) ([]model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) MarkMessageRead(_ context.Context, id int64) (model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.messages[id]
	if !ok {
		return model.ContactMessage{}, ErrNotFound
	}
	msg.IsRead = true
	m.messages[id] = msg
	return msg, nil
}

func (m *Memory) PurgeReadMessagesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, msg := range m.messages {
		if msg.IsRead && msg.SubmittedAt.Before(cutoff) {
			delete(m.messages, id)
			n++
		}
	}
	return n, nil
}

func (m *Memory) CreateUser(_ context.Context, arg CreateUserParams) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userSeq++
	role := arg.Role
	if role == "" {
		role = model.RoleAdmin
	}
	u := model.User{
		ID:           m.userSeq,
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		Email:        arg.Email,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) UpdateUserLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt.Time = at.UTC()
	u.LastLoginAt.Valid = true
	m.users[id] = u
	return nil
}

func (m *Memory) CountStats(context.Context) (model.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := model.Stats{
		Slides:        int64(len(m.slides)),
		Events:        int64(len(m.events)),
		GalleryImages: int64(len(m.gallery)),
	}
	for _, msg := range m.messages {
		if !msg.IsRead {
			st.UnreadMessages++
		}
	}
	return st, nil
}
