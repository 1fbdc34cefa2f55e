package models

import "time"

// GalleryImage is a displayable asset whose URL points at a blob in the
// public images bucket.
type GalleryImage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
