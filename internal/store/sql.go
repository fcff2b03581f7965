// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/malumbo/academy/internal/model"
)

// SQL is the Store implementation backed by database/sql. The same
// statements serve both the sqlite and mysql drivers (`?` placeholders).
type SQL struct {
	db *sql.DB
}

// NewSQL wraps an open database handle in a Store.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// DB exposes the underlying handle for health checks and tests.
func (s *SQL) DB() *sql.DB {
	return s.db
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	return s.db.Close()
}

const slideColumns = "id, title, description, image_url, display_order, is_active, created_at, updated_at"

func scanSlide(row interface{ Scan(...any) error }) (model.Slide, error) {
	var sl model.Slide
	err := row.Scan(&sl.ID, &sl.Title, &sl.Description, &sl.ImageURL,
		&sl.DisplayOrder, &sl.IsActive, &sl.CreatedAt, &sl.UpdatedAt)
	return sl, err
}

func (s *SQL) CreateSlide(ctx context.Context, arg CreateSlideParams) (model.Slide, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO slides (title, description, image_url, display_order, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Description, arg.ImageURL, arg.DisplayOrder, arg.IsActive, now, now)
	if err != nil {
		return model.Slide{}, fmt.Errorf("inserting slide: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Slide{}, fmt.Errorf("reading slide id: %w", err)
	}
	return s.GetSlide(ctx, id)
}

func (s *SQL) ListActiveSlides(ctx context.Context) ([]model.Slide, error) {
	return s.listSlides(ctx,
		`SELECT `+slideColumns+` FROM slides WHERE is_active = ?
		 ORDER BY display_order ASC, created_at DESC`, true)
}

func (s *SQL) ListSlides(ctx context.Context) ([]model.Slide, error) {
	return s.listSlides(ctx,
		`SELECT `+slideColumns+` FROM slides
		 ORDER BY display_order ASC, created_at DESC`)
}

func (s *SQL) listSlides(ctx context.Context, query string, args ...any) ([]model.Slide, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	slides := []model.Slide{}
	for rows.Next() {
		sl, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning slide: %w", err)
		}
		slides = append(slides, sl)
	}
	return slides, rows.Err()
}

func (s *SQL) GetSlide(ctx context.Context, id int64) (model.Slide, error) {
	sl, err := scanSlide(s.db.QueryRowContext(ctx,
		`SELECT `+slideColumns+` FROM slides WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Slide{}, ErrNotFound
	}
	if err != nil {
		return model.Slide{}, fmt.Errorf("getting slide: %w", err)
	}
	return sl, nil
}

func (s *SQL) UpdateSlide(ctx context.Context, arg UpdateSlideParams) (model.Slide, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE slides SET title = ?, description = ?, image_url = ?, display_order = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Description, arg.ImageURL, arg.DisplayOrder, arg.IsActive, time.Now().UTC(), arg.ID)
	if err != nil {
		return model.Slide{}, fmt.Errorf("updating slide: %w", err)
	}
	return s.GetSlide(ctx, arg.ID)
}

func (s *SQL) DeleteSlide(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "slides", id)
}

const eventColumns = "id, title, description, event_date, event_time, location, is_published, created_at, updated_at"

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var ev model.Event
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.EventDate,
		&ev.EventTime, &ev.Location, &ev.IsPublished, &ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

func (s *SQL) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (title, description, event_date, event_time, location, is_published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Description, arg.EventDate.UTC(), arg.EventTime, arg.Location, arg.IsPublished, now, now)
	if err != nil {
		return model.Event{}, fmt.Errorf("inserting event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, fmt.Errorf("reading event id: %w", err)
	}
	return s.GetEvent(ctx, id)
}

func (s *SQL) ListUpcomingEvents(ctx context.Context, from time.Time, limit int64) ([]model.Event, error) {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	return s.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE is_published = ? AND event_date >= ?
		 ORDER BY event_date ASC LIMIT ?`, true, day, limit)
}

func (s *SQL) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY event_date DESC`)
}

func (s *SQL) listEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := []model.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQL) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	ev, err := scanEvent(s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrNotFound
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("getting event: %w", err)
	}
	return ev, nil
}

func (s *SQL) UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, event_date = ?, event_time = ?, location = ?, is_published = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Description, arg.EventDate.UTC(), arg.EventTime, arg.Location, arg.IsPublished, time.Now().UTC(), arg.ID)
	if err != nil {
		return model.Event{}, fmt.Errorf("updating event: %w", err)
	}
	return s.GetEvent(ctx, arg.ID)
}

func (s *SQL) DeleteEvent(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "events", id)
}

const galleryColumns = "id, image_url, thumb_url, caption, category, is_featured, uploaded_at"

func scanGalleryImage(row interface{ Scan(...any) error }) (model.GalleryImage, error) {
	var img model.GalleryImage
	err := row.Scan(&img.ID, &img.ImageURL, &img.ThumbURL, &img.Caption,
		&img.Category, &img.IsFeatured, &img.UploadedAt)
	return img, err
}

func (s *SQL) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (model.GalleryImage, error) {
	category := arg.Category
	if category == "" {
		category = model.GalleryCategoryDefault
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO gallery_images (image_url, thumb_url, caption, category, is_featured, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.ImageURL, arg.ThumbURL, arg.Caption, category, arg.IsFeatured, time.Now().UTC())
	if err != nil {
		return model.GalleryImage{}, fmt.Errorf("inserting gallery image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.GalleryImage{}, fmt.Errorf("reading gallery image id: %w", err)
	}
	return s.GetGalleryImage(ctx, id)
}

func (s *SQL) ListGalleryImages(ctx context.Context, limit int64) ([]model.GalleryImage, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_images ORDER BY uploaded_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing gallery images: %w", err)
	}
	defer func() { _ = rows.Close() }()

	images := []model.GalleryImage{}
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning gallery image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *SQL) GetGalleryImage(ctx context.Context, id int64) (model.GalleryImage, error) {
	img, err := scanGalleryImage(s.db.QueryRowContext(ctx,
		`SELECT `+galleryColumns+` FROM gallery_images WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.GalleryImage{}, ErrNotFound
	}
	if err != nil {
		return model.GalleryImage{}, fmt.Errorf("getting gallery image: %w", err)
	}
	return img, nil
}

func (s *SQL) DeleteGalleryImage(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "gallery_images", id)
}

const messageColumns = "id, name, email, phone, message, is_read, submitted_at"

func scanMessage(row interface{ Scan(...any) error }) (model.ContactMessage, error) {
	var msg model.ContactMessage
	err := row.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Phone,
		&msg.Message, &msg.IsRead, &msg.SubmittedAt)
	return msg, err
}

func (s *SQL) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, phone, message, is_read, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Phone, arg.Message, false, time.Now().UTC())
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("inserting contact message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("reading contact message id: %w", err)
	}
	return s.getContactMessage(ctx, id)
}

func (s *SQL) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	messages := []model.ContactMessage{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *SQL) getContactMessage(ctx context.Context, id int64) (model.ContactMessage, error) {
	msg, err := scanMessage(s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContactMessage{}, ErrNotFound
	}
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("getting contact message: %w", err)
	}
	return msg, nil
}

func (s *SQL) MarkMessageRead(ctx context.Context, id int64) (model.ContactMessage, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = ? WHERE id = ?`, true, id)
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("marking message read: %w", err)
	}
	return s.getContactMessage(ctx, id)
}

func (s *SQL) PurgeReadMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM contact_messages WHERE is_read = ? AND submitted_at < ?`, true, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purging contact messages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged messages: %w", err)
	}
	return n, nil
}

const userColumns = "id, username, password_hash, email, role, created_at, last_login_at"

func (s *SQL) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	role := arg.Role
	if role == "" {
		role = model.RoleAdmin
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, email, role, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Username, arg.PasswordHash, arg.Email, role, time.Now().UTC())
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user id: %w", err)
	}
	return s.getUser(ctx, id)
}

func (s *SQL) getUser(ctx context.Context, id int64) (model.User, error) {
	return s.scanUserRow(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (s *SQL) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.scanUserRow(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (s *SQL) scanUserRow(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role,
		&u.CreatedAt, &u.LastLoginAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

func (s *SQL) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

func (s *SQL) CountStats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	row := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM slides),
		(SELECT COUNT(*) FROM events),
		(SELECT COUNT(*) FROM gallery_images),
		(SELECT COUNT(*) FROM contact_messages WHERE is_read = ?)`, false)
	if err := row.Scan(&st.Slides, &st.Events, &st.GalleryImages, &st.UnreadMessages); err != nil {
		return model.Stats{}, fmt.Errorf("counting stats: %w", err)
	}
	return st, nil
}

// deleteRow deletes by id from the named table, reporting ErrNotFound
// when no row matched. Deletion is immediate and unconditional; the
// entities are independent so there is nothing to cascade.
func (s *SQL) deleteRow(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
