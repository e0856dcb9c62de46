package model

import (
	"time"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// ValidStatus reports whether s is one of the enumerated article statuses.
func ValidStatus(s ArticleStatus) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

type Article struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Content       string        `json:"content"`
	Summary       string        `json:"summary"`
	FeaturedImage *string       `json:"featured_image,omitempty"`
	AuthorID      string        `json:"author_id"`
	CategoryID    *string       `json:"category_id,omitempty"`
	Status        ArticleStatus `json:"status"`
	ViewsCount    int           `json:"views_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`

	AuthorUsername *string `json:"author_username,omitempty"` // For display
	CategoryName   *string `json:"category_name,omitempty"`   // For display
	CategorySlug   *string `json:"category_slug,omitempty"`
}
