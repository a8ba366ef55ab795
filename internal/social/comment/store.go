// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// # Comment Data Access

// CommentRepository defines the data access contract for chapter comments.
type CommentRepository interface {

	/*
		Create appends a new comment to a chapter's thread.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (ChapterID, UserID, Body populated)

		Returns:
		  - error: NotFound if the chapter is absent, or storage failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		ListByChapter returns a chapter's comments, newest first, with the
		commenter display names joined in.

		Parameters:
		  - context: context.Context
		  - chapterID: string (UUID)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Slice ordered by creation time descending
		  - int: Total comment count for the chapter
		  - error: Database retrieval failures
	*/
	ListByChapter(context context.Context, chapterID string, limit, offset int) ([]*Comment, int, error)
}
