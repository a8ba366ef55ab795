// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taibuivan/tsuzuki/internal/platform/validate"
	"github.com/taibuivan/tsuzuki/pkg/slug"
	"github.com/taibuivan/tsuzuki/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the series catalog.
// It acts as the primary entry point for creating and discovering series.
type Service struct {
	seriesRepo SeriesRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(seriesRepo SeriesRepository, logger *slog.Logger) *Service {
	return &Service{
		seriesRepo: seriesRepo,
		logger:     logger,
	}
}

// # Series Lookups

/*
ListSeries retrieves a paginated and filtered collection of series.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for genre, status, author, search)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Series: Slice of matching publication records
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListSeries(context context.Context, filter Filter, limit, offset int) ([]*Series, int, error) {
	return service.seriesRepo.List(context, filter, limit, offset)
}

/*
GetSeries fetches a single publication record by UUID or SEO slug.

Description: If the identifier parses as a UUID it is treated as a primary
key; otherwise it resolves via the unique URL slug. The read is a single
statement, so the returned aggregates and metadata are one consistent
snapshot.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Series: The hydrated domain entity
  - error: NotFound if no match is found
*/
func (service *Service) GetSeries(context context.Context, identifier string) (*Series, error) {

	// Identity format detection
	if uuid.Validate(identifier) == nil {
		return service.seriesRepo.FindByID(context, identifier)
	}

	// Slug resolution
	return service.seriesRepo.FindBySlug(context, identifier)
}

// # Series Management

/*
CreateSeries initialises a new publication owned by the acting user.

Description: Validates the metadata, generates a UUIDv7 identity and an
SEO slug from the title, and persists the record with zeroed aggregates.

Parameters:
  - context: context.Context
  - actorID: string (Acting user, becomes the immutable author)
  - series: *Series (The entity to be persisted)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateSeries(context context.Context, actorID string, series *Series) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, series.Title).MaxLen(FieldTitle, series.Title, 300)
	validator.MaxLen(FieldDescription, series.Description, 5000)
	validator.MaxLen(FieldGenre, series.Genre, 100)

	// Lifecycle state defaults to ongoing for a brand-new serialization
	if series.Status == "" {
		series.Status = StatusOngoing
	}
	validator.OneOf(FieldStatus, string(series.Status),
		string(StatusOngoing),
		string(StatusCompleted),
		string(StatusHiatus),
	)

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity & Slug generation
	series.ID = uuidv7.Must()
	series.Slug = slug.From(series.Title)
	series.AuthorID = actorID

	if err := service.seriesRepo.Create(context, series); err != nil {
		return err
	}

	service.logger.Info("series_created",
		slog.String("series_id", series.ID),
		slog.String("author_id", actorID),
		slog.String("slug", series.Slug),
	)

	return nil
}

/*
UpdateSeries persists metadata changes to a series owned by the actor.

Description: Validation mirrors creation; the repository enforces ownership
under the series row lock, so a non-author receives Forbidden without any
write occurring.

Parameters:
  - context: context.Context
  - actorID: string (Acting user)
  - series: *Series (Target ID and modified attributes)

Returns:
  - error: Validation, NotFound, Forbidden, or persistence errors
*/
func (service *Service) UpdateSeries(context context.Context, actorID string, series *Series) error {

	validator := &validate.Validator{}
	validator.Required(FieldID, series.ID).UUID(FieldID, series.ID)
	validator.Required(FieldTitle, series.Title).MaxLen(FieldTitle, series.Title, 300)
	validator.OneOf(FieldStatus, string(series.Status),
		string(StatusOngoing),
		string(StatusCompleted),
		string(StatusHiatus),
	)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.seriesRepo.Update(context, actorID, series); err != nil {
		return err
	}

	service.logger.Info("series_updated",
		slog.String("series_id", series.ID),
		slog.String("actor_id", actorID),
	)

	return nil
}
