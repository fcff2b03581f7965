package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/model"
)

// sampleSlides is the starter carousel content inserted into an empty
// store so a fresh install renders something on the public site.
var sampleSlides = []CreateSlideParams{
	{
		Title:        "Welcome to Malumbo Academy",
		Description:  "Where innovation meets excellence in education",
		ImageURL:     "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=1600&q=80",
		DisplayOrder: 0,
		IsActive:     true,
	},
	{
		Title:        "Modern Learning Spaces",
		Description:  "State-of-the-art facilities designed for optimal learning",
		ImageURL:     "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?w=1600&q=80",
		DisplayOrder: 1,
		IsActive:     true,
	},
	{
		Title:        "Expert Faculty",
		Description:  "Learn from industry professionals and academic leaders",
		ImageURL:     "https://images.unsplash.com/photo-1524178234883-043d5c3f3cf4?w=1600&q=80",
		DisplayOrder: 2,
		IsActive:     true,
	},
}

// Seed creates the bootstrap admin user and sample content in an empty
// store. It is idempotent: an existing admin user or existing slides are
// left untouched.
func Seed(ctx context.Context, s Store, adminUsername, adminPassword string) error {
	if _, err := s.GetUserByUsername(ctx, adminUsername); err == nil {
		slog.Info("admin user already exists, skipping seed", "username", adminUsername)
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for admin user: %w", err)
	} else {
		passwordHash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		user, err := s.CreateUser(ctx, CreateUserParams{
			Username:     adminUsername,
			PasswordHash: passwordHash,
			Role:         model.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
		slog.Info("created default admin user", "id", user.ID, "username", user.Username)
	}

	slides, err := s.ListSlides(ctx)
	if err != nil {
		return fmt.Errorf("checking for slides: %w", err)
	}
	if len(slides) > 0 {
		return nil
	}

	for _, arg := range sampleSlides {
		if _, err := s.CreateSlide(ctx, arg); err != nil {
			return fmt.Errorf("creating sample slide: %w", err)
		}
	}
	slog.Info("inserted sample slides", "count", len(sampleSlides))

	return nil
}
