// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tsuzuki/internal/platform/validate"
	"github.com/taibuivan/tsuzuki/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates chapter comment creation and listing.
type Service struct {
	commentRepo CommentRepository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(commentRepo CommentRepository, logger *slog.Logger) *Service {
	return &Service{
		commentRepo: commentRepo,
		logger:      logger,
	}
}

/*
AddComment appends a comment to a chapter's thread.

Parameters:
  - context: context.Context
  - actorID: string (Acting user)
  - chapterID: string (UUID of the target chapter)
  - body: string (Comment text, non-empty)

Returns:
  - *Comment: The stored comment
  - error: Validation, NotFound, or storage errors
*/
func (service *Service) AddComment(context context.Context, actorID, chapterID, body string) (*Comment, error) {

	validator := &validate.Validator{}
	validator.Required(FieldChapterID, chapterID).UUID(FieldChapterID, chapterID)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, 5000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Comment{
		ID:        uuidv7.Must(),
		ChapterID: chapterID,
		UserID:    actorID,
		Body:      body,
	}

	if err := service.commentRepo.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("comment_added",
		slog.String("comment_id", record.ID),
		slog.String("chapter_id", chapterID),
		slog.String("actor_id", actorID),
	)

	return record, nil
}

/*
ListComments returns a chapter's comments, newest first.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Comment: Comments with commenter display names
  - int: Total comment count
  - error: Repository level errors
*/
func (service *Service) ListComments(context context.Context, chapterID string, limit, offset int) ([]*Comment, int, error) {
	return service.commentRepo.ListByChapter(context, chapterID, limit, offset)
}
