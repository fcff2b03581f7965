package model

// Stats holds the content counts shown on the admin dashboard.
type Stats struct {
	Slides         int64 `json:"slides"`
	Events         int64 `json:"events"`
	GalleryImages  int64 `json:"gallery_images"`
	UnreadMessages int64 `json:"unread_messages"`
}
