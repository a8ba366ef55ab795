// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment provides append-only discussion threads on chapters.

Comments are simple facts: they maintain no aggregates and carry no edit or
delete lifecycle, so writes are single-statement inserts with no locking
requirements.
*/
package comment

import "time"

// # Domain Entities

// Comment represents a single remark attached to a chapter.
type Comment struct {
	ID        string    `json:"id"`
	ChapterID string    `json:"chapter_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"` // Denormalized for display
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldChapterID = "chapter_id"
	FieldBody      = "body"
)
