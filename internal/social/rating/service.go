// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tsuzuki/internal/platform/validate"
	"github.com/taibuivan/tsuzuki/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates rating submission and retrieval.
type Service struct {
	ratingRepo RatingRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(ratingRepo RatingRepository, logger *slog.Logger) *Service {
	return &Service{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// # Submission

/*
SubmitRating records or overwrites the actor's rating for a series.

Description: Validates the score bounds, then delegates to the repository's
single-transaction upsert-and-recompute. A user submitting twice keeps one
rating row; resubmitting the same score is harmless and leaves the
aggregates at the same values.

Parameters:
  - context: context.Context
  - actorID: string (Acting user; any authenticated member may rate)
  - seriesID: string (UUID of the target series)
  - score: int (1..5 inclusive)
  - comment: string (Optional free-text remark)

Returns:
  - *Rating: The stored rating row
  - *Aggregate: The recomputed series summary after this submission
  - error: Validation, NotFound, or storage errors
*/
func (service *Service) SubmitRating(context context.Context, actorID, seriesID string, score int, comment string) (*Rating, *Aggregate, error) {

	// Score bounds validation
	validator := &validate.Validator{}
	validator.Required(FieldSeriesID, seriesID).UUID(FieldSeriesID, seriesID)
	validator.Range(FieldScore, score, ScoreMin, ScoreMax)
	validator.MaxLen(FieldComment, comment, 2000)

	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	record := &Rating{
		ID:       uuidv7.Must(),
		SeriesID: seriesID,
		UserID:   actorID,
		Score:    score,
		Comment:  comment,
	}

	aggregate, err := service.ratingRepo.Upsert(context, record)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("rating_submitted",
		slog.String("series_id", seriesID),
		slog.String("actor_id", actorID),
		slog.Int("score", score),
		slog.Int("rating_count", aggregate.Count),
		slog.Float64("rating_avg", aggregate.Average),
	)

	return record, aggregate, nil
}

// # Listing

/*
ListRatings returns a series' ratings, newest first.

Parameters:
  - context: context.Context
  - seriesID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Rating: Ratings with rater display names
  - int: Total rating count
  - error: Repository level errors
*/
func (service *Service) ListRatings(context context.Context, seriesID string, limit, offset int) ([]*Rating, int, error) {
	return service.ratingRepo.ListBySeries(context, seriesID, limit, offset)
}
