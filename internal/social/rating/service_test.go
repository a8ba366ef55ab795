// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating_test

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/social/rating"
)

// # Test Doubles

// fakeRatingStore implements [rating.RatingRepository] in memory.
//
// The mutex stands in for the series row lock: every upsert recomputes the
// aggregates over the full rating set while holding it, the same
// serialization the database transaction provides.
type fakeRatingStore struct {
	mu sync.Mutex

	knownSeries map[string]bool
	scores      map[string]map[string]*rating.Rating // seriesID -> userID -> row
	aggregates  map[string]*rating.Aggregate         // last published per series
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{
		knownSeries: make(map[string]bool),
		scores:      make(map[string]map[string]*rating.Rating),
		aggregates:  make(map[string]*rating.Aggregate),
	}
}

func (store *fakeRatingStore) addSeries(seriesID string) {
	store.knownSeries[seriesID] = true
	store.scores[seriesID] = make(map[string]*rating.Rating)
}

func (store *fakeRatingStore) Upsert(_ context.Context, record *rating.Rating) (*rating.Aggregate, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.knownSeries[record.SeriesID] {
		return nil, apperr.NotFound("Series")
	}

	// One row per (series, user): a resubmission overwrites the score
	if existing, ok := store.scores[record.SeriesID][record.UserID]; ok {
		record.ID = existing.ID
	}
	store.scores[record.SeriesID][record.UserID] = record

	// Full recompute over every surviving row
	var sum, count int
	for _, row := range store.scores[record.SeriesID] {
		sum += row.Score
		count++
	}
	aggregate := &rating.Aggregate{
		Count:   count,
		Average: math.Round(float64(sum)/float64(count)*10) / 10,
	}
	store.aggregates[record.SeriesID] = aggregate
	return aggregate, nil
}

func (store *fakeRatingStore) ListBySeries(_ context.Context, seriesID string, limit, offset int) ([]*rating.Rating, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var collection []*rating.Rating
	for _, row := range store.scores[seriesID] {
		collection = append(collection, row)
	}
	sort.Slice(collection, func(i, j int) bool { return collection[i].UserID < collection[j].UserID })
	return collection, len(collection), nil
}

// # Helpers

const (
	ratedSeriesID = "01920000-0000-7000-8000-000000000010"
	raterOneID    = "01920000-0000-7000-8000-000000000011"
	raterTwoID    = "01920000-0000-7000-8000-000000000012"
)

func newRatingService(store *fakeRatingStore) *rating.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return rating.NewService(store, logger)
}

// # Score Bounds

/*
TestSubmitRating_EnforcesScoreBounds verifies that scores outside 1..5 are
rejected before any storage call and that both boundary values are accepted.
*/
func TestSubmitRating_EnforcesScoreBounds(t *testing.T) {
	store := newFakeRatingStore()
	store.addSeries(ratedSeriesID)
	service := newRatingService(store)

	for _, score := range []int{-1, 0, 6, 100} {
		_, _, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, score, "")

		require.Error(t, err, "score %d must be rejected", score)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
	assert.Empty(t, store.scores[ratedSeriesID], "no row may be written for an out-of-range score")

	for _, score := range []int{rating.ScoreMin, rating.ScoreMax} {
		_, _, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, score, "")
		require.NoError(t, err, "boundary score %d must be accepted", score)
	}
}

/*
TestSubmitRating_MissingSeriesIsNotFound verifies that rating an absent
series maps to NotFound.
*/
func TestSubmitRating_MissingSeriesIsNotFound(t *testing.T) {
	store := newFakeRatingStore()
	service := newRatingService(store)

	_, _, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, 4, "")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Aggregate Semantics

/*
TestSubmitRating_ResubmissionOverwrites verifies that a user rating the same
series twice keeps one row and the aggregates reflect only the latest score.
*/
func TestSubmitRating_ResubmissionOverwrites(t *testing.T) {
	store := newFakeRatingStore()
	store.addSeries(ratedSeriesID)
	service := newRatingService(store)

	// 1. First submission
	_, aggregate, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, 2, "rough start")
	require.NoError(t, err)
	assert.Equal(t, 1, aggregate.Count)
	assert.InDelta(t, 2.0, aggregate.Average, 0.001)

	// 2. Same user revises the score upward
	_, aggregate, err = service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, 5, "it grew on me")
	require.NoError(t, err)
	assert.Equal(t, 1, aggregate.Count, "a resubmission must not add a second row")
	assert.InDelta(t, 5.0, aggregate.Average, 0.001, "the average must reflect the latest score only")

	// 3. Resubmitting the same score is a no-op on the aggregates
	_, repeated, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, 5, "it grew on me")
	require.NoError(t, err)
	assert.Equal(t, aggregate.Count, repeated.Count)
	assert.InDelta(t, aggregate.Average, repeated.Average, 0.001)
}

/*
TestSubmitRating_AverageRoundsToOneDecimal verifies the published average is
the full recompute rounded to one decimal place.
*/
func TestSubmitRating_AverageRoundsToOneDecimal(t *testing.T) {
	store := newFakeRatingStore()
	store.addSeries(ratedSeriesID)
	service := newRatingService(store)

	// 5 and 4 from two raters: true mean 4.5
	_, _, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, 5, "")
	require.NoError(t, err)
	_, aggregate, err := service.SubmitRating(context.Background(), raterTwoID, ratedSeriesID, 4, "")
	require.NoError(t, err)

	assert.Equal(t, 2, aggregate.Count)
	assert.InDelta(t, 4.5, aggregate.Average, 0.001)

	// A third rater at 5: mean 14/3 = 4.666..., published as 4.7
	thirdRater := "01920000-0000-7000-8000-000000000013"
	_, aggregate, err = service.SubmitRating(context.Background(), thirdRater, ratedSeriesID, 5, "")
	require.NoError(t, err)

	assert.Equal(t, 3, aggregate.Count)
	assert.InDelta(t, 4.7, aggregate.Average, 0.001)
}

// # Concurrency

/*
TestSubmitRating_ConcurrentSubmissionsConverge verifies that parallel ratings
from distinct users all land and the final aggregates equal a fresh recompute
over every row.
*/
func TestSubmitRating_ConcurrentSubmissionsConverge(t *testing.T) {
	store := newFakeRatingStore()
	store.addSeries(ratedSeriesID)
	service := newRatingService(store)

	const raters = 25

	var waitGroup sync.WaitGroup
	errs := make([]error, raters)

	for i := 0; i < raters; i++ {
		waitGroup.Add(1)
		go func(index int) {
			defer waitGroup.Done()
			userID := fmt.Sprintf("01920000-0000-7000-8000-%012d", index+100)
			_, _, errs[index] = service.SubmitRating(context.Background(), userID, ratedSeriesID, index%5+1, "")
		}(i)
	}
	waitGroup.Wait()

	for i, err := range errs {
		require.NoError(t, err, "submission %d", i)
	}

	// Recompute independently and compare with the last published aggregate
	var sum int
	for _, row := range store.scores[ratedSeriesID] {
		sum += row.Score
	}
	expected := math.Round(float64(sum)/float64(raters)*10) / 10

	final := store.aggregates[ratedSeriesID]
	require.NotNil(t, final)
	assert.Equal(t, raters, final.Count, "every rater must contribute exactly one row")
	assert.InDelta(t, expected, final.Average, 0.001, "the published average must match a full recompute")
}

// # Listing

/*
TestListRatings_ReturnsStoredRows verifies list delegation and totals.
*/
func TestListRatings_ReturnsStoredRows(t *testing.T) {
	store := newFakeRatingStore()
	store.addSeries(ratedSeriesID)
	service := newRatingService(store)

	_, _, err := service.SubmitRating(context.Background(), raterOneID, ratedSeriesID, 3, "fine")
	require.NoError(t, err)
	_, _, err = service.SubmitRating(context.Background(), raterTwoID, ratedSeriesID, 5, "superb")
	require.NoError(t, err)

	rows, total, err := service.ListRatings(context.Background(), ratedSeriesID, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, rows, 2)
}
