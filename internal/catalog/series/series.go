// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series provides the domain model for serialized publications.

A series is the root aggregate of the Tsuzuki catalog. It owns the chapter
counter and the rating aggregates; both are mutated only inside transactions
that hold the series row lock, so their values never drift from the facts
they summarize.

# Core Responsibility

  - Identity: Stable UUIDv7 primary keys plus SEO slugs for public URLs.
  - Authorship: Every series is owned by the account that created it.
  - Aggregates: ChapterCount, RatingAvg and RatingCount are derived values
    maintained by the chapter and rating packages under the series row lock.
*/
package series

import "time"

// # Domain Enums

// Status describes the publication lifecycle state of a series.
type Status string

const (
	// StatusOngoing indicates the series is actively releasing chapters.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates the series has finished its run.
	StatusCompleted Status = "completed"

	// StatusHiatus indicates releases are paused indefinitely.
	StatusHiatus Status = "hiatus"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus:
		return true
	}
	return false
}

// # Core Entities

// Series is the central aggregate of the Tsuzuki domain.
// It represents a single serialized publication in the catalog.
type Series struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"` // URL-safe identifier
	Description string `json:"description"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name,omitempty"` // Denormalized for display
	Genre       string `json:"genre"`
	Status      Status `json:"status"`
	CoverURL    string `json:"cover_url,omitempty"`

	// # Maintained Aggregates
	// Updated transactionally under the series row lock, never incrementally
	// outside it. Readers may trust these without re-deriving.
	ChapterCount int     `json:"chapter_count"`
	RatingAvg    float64 `json:"rating_avg"`
	RatingCount  int     `json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered series list query.
type Filter struct {
	Genre    string `json:"genre,omitempty"`
	Status   Status `json:"status,omitempty"`
	AuthorID string `json:"author_id,omitempty"`
	Query    string `json:"q,omitempty"` // Title substring search
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldStatus      = "status"
	FieldCoverURL    = "cover_url"
)
