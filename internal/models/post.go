// Package models defines the domain types for quickpost.
package models

import "time"

// Post represents a full blog post as stored on disk: metadata plus the raw
// markdown content (including any frontmatter block).
type Post struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta is the persisted metadata file (meta.json) inside a post folder.
type Meta struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostSummary is a lightweight representation returned by list operations
// (no content).
type PostSummary struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary converts a Meta to its list representation.
func (m Meta) Summary() PostSummary {
	return PostSummary{
		ID:        m.ID,
		Slug:      m.Slug,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
