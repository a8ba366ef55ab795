// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating provides the domain model for series ratings.

Each user holds at most one rating per series; submitting again overwrites
the previous score. Every accepted submission recomputes the owning series'
rating aggregates in full from the stored facts, inside the same transaction
and under the series row lock, so the published average and count can never
drift from the actual ratings.

# Core Responsibility

  - Upsert Semantics: One rating per (series, user), idempotent resubmission.
  - Aggregate Truth: RatingAvg/RatingCount on the series are derived values,
    recomputed (never incrementally patched) on every write.
*/
package rating

import "time"

// # Domain Entities

// Rating represents one user's score for a series.
type Rating struct {
	ID        string    `json:"id"`
	SeriesID  string    `json:"series_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"` // Denormalized for display
	Score     int       `json:"score"`               // 1..5 inclusive
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Aggregate is the recomputed rating summary written back to the series row.
type Aggregate struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"` // Rounded to one decimal place
}

// # Score Bounds

const (
	// ScoreMin is the lowest accepted rating value.
	ScoreMin = 1

	// ScoreMax is the highest accepted rating value.
	ScoreMax = 5
)

// # Field Identifiers

const (
	FieldSeriesID = "series_id"
	FieldScore    = "score"
	FieldComment  = "comment"
)
