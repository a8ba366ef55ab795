// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsuzuki/internal/platform/database/schema"
	"github.com/taibuivan/tsuzuki/internal/platform/dberr"
)

// # PostgreSQL Repositories

// commentRepository implements the [CommentRepository] interface using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs a PostgreSQL backed comment store.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

// # Comment Repository Implementation

/*
Create appends a new comment to a chapter's thread.

Description: Single-statement insert. The foreign key to the chapter turns
a comment on a missing chapter into NotFound via the error bridge.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: apperr.NotFound or storage failures
*/
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.ChapterID,
		schema.SocialComment.UserID, schema.SocialComment.Body,
		schema.SocialComment.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID,
		comment.ChapterID,
		comment.UserID,
		comment.Body,
	).Scan(&comment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Chapter", "")
	}

	return nil
}

/*
ListByChapter returns a chapter's comments, newest first.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Comment: Comments with commenter display names
  - int: Total comment count for the chapter
  - error: Database execution errors
*/
func (repository *commentRepository) ListByChapter(context context.Context, chapterID string, limit, offset int) ([]*Comment, int, error) {

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s AS username, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialComment.ID, schema.SocialComment.ChapterID, schema.SocialComment.UserID,
		schema.UsersAccount.DisplayName, schema.SocialComment.Body, schema.SocialComment.CreatedAt,
		schema.SocialComment.Table,
		schema.UsersAccount.Table, schema.SocialComment.UserID, schema.UsersAccount.ID,
		schema.SocialComment.ChapterID,
		schema.SocialComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, chapterID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Comment", "")
	}
	defer rows.Close()

	var collection []*Comment
	var totalCount int

	for rows.Next() {
		var record Comment
		err := rows.Scan(
			&record.ID,
			&record.ChapterID,
			&record.UserID,
			&record.UserName,
			&record.Body,
			&record.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Comment", "")
		}
		collection = append(collection, &record)
	}

	return collection, totalCount, nil
}
