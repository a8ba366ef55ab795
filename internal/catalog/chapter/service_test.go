// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsuzuki/internal/catalog/chapter"
	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
)

// # Test Doubles

// fakeChapterStore implements [chapter.ChapterRepository] in memory.
//
// A single mutex stands in for the per-series row lock: publications run
// strictly one at a time, the same serialization the database provides.
type fakeChapterStore struct {
	mu sync.Mutex

	seriesOwner  map[string]string // seriesID -> authorID
	chapterCount map[string]int    // seriesID -> counter
	published    map[string]*chapter.Chapter
	takenNumbers map[string]map[int]bool // seriesID -> occupied sequence numbers
}

func newFakeChapterStore() *fakeChapterStore {
	return &fakeChapterStore{
		seriesOwner:  make(map[string]string),
		chapterCount: make(map[string]int),
		published:    make(map[string]*chapter.Chapter),
		takenNumbers: make(map[string]map[int]bool),
	}
}

func (store *fakeChapterStore) addSeries(seriesID, authorID string) {
	store.seriesOwner[seriesID] = authorID
	store.takenNumbers[seriesID] = make(map[int]bool)
}

func (store *fakeChapterStore) Publish(_ context.Context, actorID string, record *chapter.Chapter) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	authorID, exists := store.seriesOwner[record.SeriesID]
	if !exists {
		return apperr.NotFound("Series")
	}
	if authorID != actorID {
		return apperr.Forbidden("Only the series author may publish chapters")
	}
	if store.takenNumbers[record.SeriesID][record.Number] {
		return apperr.Conflict("A chapter with this number already exists for the series")
	}

	record.PageCount = len(record.Pages)
	store.takenNumbers[record.SeriesID][record.Number] = true
	store.published[record.ID] = record
	store.chapterCount[record.SeriesID]++
	return nil
}

func (store *fakeChapterStore) FindWithPages(_ context.Context, id string) (*chapter.Chapter, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, exists := store.published[id]
	if !exists {
		return nil, apperr.NotFound("Chapter")
	}
	return record, nil
}

func (store *fakeChapterStore) ListBySeries(_ context.Context, seriesID string, limit, offset int) ([]*chapter.Chapter, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var collection []*chapter.Chapter
	for _, record := range store.published {
		if record.SeriesID == seriesID {
			collection = append(collection, record)
		}
	}
	sort.Slice(collection, func(i, j int) bool { return collection[i].Number < collection[j].Number })
	return collection, len(collection), nil
}

// # Helpers

const (
	testSeriesID = "01920000-0000-7000-8000-000000000001"
	testAuthorID = "01920000-0000-7000-8000-0000000000aa"
	testReaderID = "01920000-0000-7000-8000-0000000000bb"
)

func newChapterService(store *fakeChapterStore) *chapter.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return chapter.NewService(store, logger)
}

// # Publication Preconditions

/*
TestPublishChapter_RejectsEmptyPageList verifies that a publication without
pages never reaches the store.
*/
func TestPublishChapter_RejectsEmptyPageList(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	_, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "Chapter One", 1, nil)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, store.published, "nothing may be persisted on a validation failure")
}

/*
TestPublishChapter_RejectsNonPositiveNumber verifies the sequence number
lower bound.
*/
func TestPublishChapter_RejectsNonPositiveNumber(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	for _, number := range []int{0, -1, -100} {
		_, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "", number, []string{"https://cdn.example/p1.png"})

		require.Error(t, err, "number %d must be rejected", number)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	}
}

/*
TestPublishChapter_RejectsBlankContentRef verifies that an empty page
reference fails validation before any identity is assigned.
*/
func TestPublishChapter_RejectsBlankContentRef(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	_, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "", 1,
		[]string{"https://cdn.example/p1.png", "", "https://cdn.example/p3.png"})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Publication Semantics

/*
TestPublishChapter_NumbersPagesInInputOrder verifies the published aggregate:
pages numbered 1..N in the order supplied, page count derived, IDs assigned.
*/
func TestPublishChapter_NumbersPagesInInputOrder(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	refs := []string{
		"https://cdn.example/cover.png",
		"https://cdn.example/spread.png",
		"https://cdn.example/outro.png",
	}

	record, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "Departure", 1, refs)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 3, record.PageCount)
	require.Len(t, record.Pages, 3)

	seenIDs := make(map[string]bool)
	for index, page := range record.Pages {
		assert.Equal(t, index+1, page.PageNumber, "pages must be numbered by input position")
		assert.Equal(t, refs[index], page.ContentURL, "input order must be preserved")
		assert.Equal(t, record.ID, page.ChapterID)
		assert.False(t, seenIDs[page.ID], "page IDs must be unique")
		seenIDs[page.ID] = true
	}

	assert.Equal(t, 1, store.chapterCount[testSeriesID], "publication must advance the series counter")
}

/*
TestPublishChapter_ForbidsNonAuthor verifies the ownership guard outcome.
*/
func TestPublishChapter_ForbidsNonAuthor(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	_, err := service.PublishChapter(context.Background(), testReaderID, testSeriesID, "", 1, []string{"https://cdn.example/p1.png"})

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Zero(t, store.chapterCount[testSeriesID], "a forbidden publication must leave no effects")
}

/*
TestPublishChapter_MissingSeriesIsNotFound verifies that publishing into an
absent series maps to NotFound, not Internal.
*/
func TestPublishChapter_MissingSeriesIsNotFound(t *testing.T) {
	store := newFakeChapterStore()
	service := newChapterService(store)

	_, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "", 1, []string{"https://cdn.example/p1.png"})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestPublishChapter_DuplicateNumberConflicts verifies that a taken sequence
number surfaces as Conflict and leaves the counter untouched.
*/
func TestPublishChapter_DuplicateNumberConflicts(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	_, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "First", 7, []string{"https://cdn.example/p1.png"})
	require.NoError(t, err)

	_, err = service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "Second", 7, []string{"https://cdn.example/p2.png"})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Equal(t, 1, store.chapterCount[testSeriesID], "the losing publication must not advance the counter")
}

// # Concurrency

/*
TestPublishChapter_ConcurrentPublicationsSerialize verifies that parallel
publications against one series neither lose counter increments nor admit
duplicate sequence numbers.
*/
func TestPublishChapter_ConcurrentPublicationsSerialize(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	const publications = 32

	var waitGroup sync.WaitGroup
	errs := make([]error, publications)

	for i := 0; i < publications; i++ {
		waitGroup.Add(1)
		go func(number int) {
			defer waitGroup.Done()
			_, errs[number-1] = service.PublishChapter(context.Background(), testAuthorID, testSeriesID,
				"", number, []string{fmt.Sprintf("https://cdn.example/ch%d/p1.png", number)})
		}(i + 1)
	}
	waitGroup.Wait()

	for i, err := range errs {
		require.NoError(t, err, "publication %d", i+1)
	}

	assert.Equal(t, publications, store.chapterCount[testSeriesID], "every publication must be counted exactly once")

	chapters, total, err := service.ListChapters(context.Background(), testSeriesID, publications, 0)
	require.NoError(t, err)
	assert.Equal(t, publications, total)
	require.Len(t, chapters, publications)
	for i, record := range chapters {
		assert.Equal(t, i+1, record.Number, "sequence numbers must be dense and unique")
	}
}

// # Snapshot Reads

/*
TestGetChapterWithPages_ReturnsConsistentAggregate verifies the read path
returns the page count agreeing with the page slice.
*/
func TestGetChapterWithPages_ReturnsConsistentAggregate(t *testing.T) {
	store := newFakeChapterStore()
	store.addSeries(testSeriesID, testAuthorID)
	service := newChapterService(store)

	published, err := service.PublishChapter(context.Background(), testAuthorID, testSeriesID, "Snapshot", 1,
		[]string{"https://cdn.example/p1.png", "https://cdn.example/p2.png"})
	require.NoError(t, err)

	fetched, err := service.GetChapterWithPages(context.Background(), published.ID)

	require.NoError(t, err)
	assert.Equal(t, fetched.PageCount, len(fetched.Pages), "page_count must equal the number of pages returned")
	assert.Equal(t, published.ID, fetched.ID)
}

/*
TestGetChapterWithPages_MissingIsNotFound verifies the absent-row mapping.
*/
func TestGetChapterWithPages_MissingIsNotFound(t *testing.T) {
	store := newFakeChapterStore()
	service := newChapterService(store)

	_, err := service.GetChapterWithPages(context.Background(), "01920000-0000-7000-8000-00000000dead")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
