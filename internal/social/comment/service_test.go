// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/social/comment"
)

// # Test Doubles

// fakeCommentStore implements [comment.CommentRepository] in memory.
// Comments are append-only; newest entries are listed first.
type fakeCommentStore struct {
	knownChapters map[string]bool
	byChapter     map[string][]*comment.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{
		knownChapters: make(map[string]bool),
		byChapter:     make(map[string][]*comment.Comment),
	}
}

func (store *fakeCommentStore) Create(_ context.Context, record *comment.Comment) error {
	if !store.knownChapters[record.ChapterID] {
		return apperr.NotFound("Chapter")
	}
	store.byChapter[record.ChapterID] = append([]*comment.Comment{record}, store.byChapter[record.ChapterID]...)
	return nil
}

func (store *fakeCommentStore) ListByChapter(_ context.Context, chapterID string, limit, offset int) ([]*comment.Comment, int, error) {
	collection := store.byChapter[chapterID]
	return collection, len(collection), nil
}

// # Helpers

const (
	commentedChapterID = "01920000-0000-7000-8000-000000000030"
	commenterID        = "01920000-0000-7000-8000-000000000031"
)

func newCommentService(store *fakeCommentStore) *comment.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return comment.NewService(store, logger)
}

// # Creation

/*
TestAddComment_AppendsToThread verifies that a valid comment lands in the
chapter's thread with identity and authorship assigned.
*/
func TestAddComment_AppendsToThread(t *testing.T) {
	store := newFakeCommentStore()
	store.knownChapters[commentedChapterID] = true
	service := newCommentService(store)

	record, err := service.AddComment(context.Background(), commenterID, commentedChapterID, "That twist caught me off guard.")

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, commenterID, record.UserID)
	assert.Equal(t, commentedChapterID, record.ChapterID)
	require.Len(t, store.byChapter[commentedChapterID], 1)
}

/*
TestAddComment_RejectsInvalidInput verifies body presence, body length, and
the chapter identifier format.
*/
func TestAddComment_RejectsInvalidInput(t *testing.T) {
	store := newFakeCommentStore()
	store.knownChapters[commentedChapterID] = true
	service := newCommentService(store)

	cases := []struct {
		name      string
		chapterID string
		body      string
	}{
		{"empty body", commentedChapterID, ""},
		{"oversized body", commentedChapterID, strings.Repeat("x", 5001)},
		{"malformed chapter id", "not-a-uuid", "fine body"},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.AddComment(context.Background(), commenterID, testCase.chapterID, testCase.body)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
	assert.Empty(t, store.byChapter[commentedChapterID])
}

/*
TestAddComment_MissingChapterIsNotFound verifies the absent-parent mapping.
*/
func TestAddComment_MissingChapterIsNotFound(t *testing.T) {
	service := newCommentService(newFakeCommentStore())

	_, err := service.AddComment(context.Background(), commenterID, commentedChapterID, "hello?")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Listing

/*
TestListComments_NewestFirst verifies thread ordering and totals.
*/
func TestListComments_NewestFirst(t *testing.T) {
	store := newFakeCommentStore()
	store.knownChapters[commentedChapterID] = true
	service := newCommentService(store)

	_, err := service.AddComment(context.Background(), commenterID, commentedChapterID, "first")
	require.NoError(t, err)
	_, err = service.AddComment(context.Background(), commenterID, commentedChapterID, "second")
	require.NoError(t, err)

	comments, total, err := service.ListComments(context.Background(), commentedChapterID, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Body, "the thread must be ordered newest first")
}
