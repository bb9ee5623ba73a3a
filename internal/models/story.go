package models

import "time"

// Story is a success story shared by a member of the network.
type Story struct {
	ID         int64     `db:"id" json:"id"`
	AuthorID   int64     `db:"author_id" json:"author_id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	Category   *string   `db:"category" json:"category"`
	IsFeatured bool      `db:"is_featured" json:"is_featured"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	AuthorName *string `db:"author_name" json:"author_name,omitempty"`
}

// CreateStoryRequest is the payload for publishing a story.
type CreateStoryRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	Category *string `json:"category"`
}

// StoryPatch carries optional updates for an existing story. IsFeatured
// is honored only for admins.
type StoryPatch struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Category   *string `json:"category"`
	IsFeatured *bool   `json:"is_featured"`
}

// StoryFilter narrows story listings.
type StoryFilter struct {
	Category *string
	Featured *bool
}
