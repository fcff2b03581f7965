// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/malumbo/academy/internal/cache"
	"github.com/malumbo/academy/internal/model"
	"github.com/malumbo/academy/internal/store"
)

// maxUploadBytes caps gallery uploads at 10MB.
const maxUploadBytes = 10 << 20

// Thumbnail bounding box for the gallery grid.
const (
	thumbWidth  = 480
	thumbHeight = 360
)

// allowedImageExts are the upload extensions the thumbnailer can encode.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// CreateGalleryImageRequest represents the request body for creating a
// gallery image from an external URL.
type CreateGalleryImageRequest struct {
	ImageURL   string `json:"image_url"`
	ThumbURL   string `json:"thumb_url"`
	Caption    string `json:"caption"`
	Category   string `json:"category"`
	IsFeatured bool   `json:"is_featured"`
}

// ListPublicGallery handles GET /api/gallery (public, newest 20).
func (h *Handler) ListPublicGallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.cachedList(ctx, cache.KeyGallery, func() (any, error) {
		images, err := h.store.ListGalleryImages(ctx, publicGalleryLimit)
		if err != nil {
			return nil, err
		}
		if images == nil {
			images = []model.GalleryImage{}
		}
		return images, nil
	})
	if err != nil {
		WriteInternalError(w, "Failed to list gallery images")
		return
	}

	WriteSuccess(w, data)
}

// ListGalleryImages handles GET /api/admin/gallery.
func (h *Handler) ListGalleryImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.ListGalleryImages(r.Context(), 0)
	if err != nil {
		WriteInternalError(w, "Failed to list gallery images")
		return
	}
	if images == nil {
		images = []model.GalleryImage{}
	}
	WriteSuccess(w, images)
}

// CreateGalleryImage handles POST /api/admin/gallery.
func (h *Handler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req CreateGalleryImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.ImageURL == "" {
		WriteValidationError(w, map[string]string{"image_url": "Image URL is required"})
		return
	}
	if req.Category == "" {
		req.Category = model.GalleryCategoryDefault
	}

	image, err := h.store.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
		ImageURL:   req.ImageURL,
		ThumbURL:   req.ThumbURL,
		Caption:    h.sanitizer.Sanitize(req.Caption),
		Category:   req.Category,
		IsFeatured: req.IsFeatured,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create gallery image")
		return
	}

	h.invalidate(r.Context(), cache.KeyGallery)
	WriteCreated(w, image)
}

// UploadGalleryImage handles POST /api/admin/gallery/upload.
// Accepts multipart/form-data with a "file" field plus optional
// caption, category and is_featured fields. The original is stored
// under the uploads directory with a UUID name and a JPEG thumbnail is
// generated next to it.
func (h *Handler) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteBadRequest(w, "Failed to parse multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteValidationError(w, map[string]string{"file": "Image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		WriteValidationError(w, map[string]string{"file": "Unsupported image type. Use JPEG, PNG or GIF"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		WriteInternalError(w, "Failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		WriteValidationError(w, map[string]string{"file": "File exceeds the 10MB upload limit"})
		return
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		WriteValidationError(w, map[string]string{"file": "File is not a decodable image"})
		return
	}

	if err := os.MkdirAll(h.cfg.UploadsDir, 0o755); err != nil {
		WriteInternalError(w, "Failed to prepare uploads directory")
		return
	}

	id := uuid.New().String()
	filename := id + ext
	thumbName := id + "_thumb.jpg"

	if err := os.WriteFile(filepath.Join(h.cfg.UploadsDir, filename), data, 0o644); err != nil {
		WriteInternalError(w, "Failed to store upload")
		return
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(h.cfg.UploadsDir, thumbName)); err != nil {
		WriteInternalError(w, "Failed to generate thumbnail")
		return
	}

	category := r.FormValue("category")
	if category == "" {
		category = model.GalleryCategoryDefault
	}

	image, err := h.store.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
		ImageURL:   "/uploads/" + filename,
		ThumbURL:   "/uploads/" + thumbName,
		Caption:    h.sanitizer.Sanitize(r.FormValue("caption")),
		Category:   category,
		IsFeatured: r.FormValue("is_featured") == "true",
	})
	if err != nil {
		WriteInternalError(w, "Failed to create gallery image")
		return
	}

	h.invalidate(r.Context(), cache.KeyGallery)
	WriteCreated(w, image)
}

// DeleteGalleryImage handles DELETE /api/admin/gallery/{id}.
// Only the row is removed; files under the uploads dir stay on disk.
func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if deleteEntityByID(w, r, "gallery image", func(id int64) error {
		return h.store.DeleteGalleryImage(r.Context(), id)
	}) {
		h.invalidate(r.Context(), cache.KeyGallery)
	}
}
