// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// GalleryCategoryDefault is assigned when a gallery image is created
// without an explicit category.
const GalleryCategoryDefault = "general"

// GalleryImage represents one image in the public gallery grid.
type GalleryImage struct {
	ID         int64     `json:"id"`
	ImageURL   string    `json:"image_url"`
	ThumbURL   string    `json:"thumb_url,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	Category   string    `json:"category"`
	IsFeatured bool      `json:"is_featured"`
	UploadedAt time.Time `json:"uploaded_at"`
}
