package models

import "time"

type PostType string

const (
	PostTypeImage PostType = "image"
	PostTypeVideo PostType = "video"
	PostTypeText  PostType = "text"
)

// ContentPost is one entry of the published feed. IDs are ksuids, so they
// sort by creation time; a sequence kept newest-first never needs an
// explicit sort.
type ContentPost struct {
	ID        string    `json:"id"`
	Type      PostType  `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
