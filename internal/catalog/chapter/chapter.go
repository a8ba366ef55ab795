// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter provides the domain models for chapters and their page content.

A chapter is published as one unit: the chapter row, its ordered pages, and
the owning series' chapter counter either all land or none do. Readers can
therefore rely on pagecount always matching the number of stored pages.

# Core Responsibility

  - Serialisation: Manages [Chapter] ordering via per-series sequence numbers.
  - Content Delivery: Defines the [Page] structure for externally hosted images.
  - Atomicity: Publication is all-or-nothing, serialized per series.
*/
package chapter

import "time"

// # Chapter Aggregate

// Chapter represents a single chapter (episode) of a series.
// It acts as the container for a sequence of image pages.
type Chapter struct {
	ID        string    `json:"id"`
	SeriesID  string    `json:"series_id"`
	Title     string    `json:"title"` // Optional; may be empty for untitled chapters
	Number    int       `json:"number"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`

	// Pages is populated only by snapshot reads; list views leave it nil.
	Pages []*Page `json:"pages,omitempty"`
}

// # Page Content

// Page represents a single image page within a [Chapter].
type Page struct {
	ID         string `json:"id"`
	ChapterID  string `json:"chapter_id"`
	PageNumber int    `json:"page_number"`
	ContentURL string `json:"content_url"` // Externally hosted image location
}

// # Field Identifiers

// Global field names for validation and identity mapping.
const (
	FieldID       = "id"
	FieldSeriesID = "series_id"
	FieldTitle    = "title"
	FieldNumber   = "number"
	FieldPages    = "pages"
)
