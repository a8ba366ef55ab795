// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tsuzuki/internal/platform/validate"
	"github.com/taibuivan/tsuzuki/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the chapter publication workflow and snapshot reads.
type Service struct {
	chapterRepo ChapterRepository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(chapterRepo ChapterRepository, logger *slog.Logger) *Service {
	return &Service{
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// # Publication

/*
PublishChapter atomically publishes a chapter with its ordered page content.

Description: Validates the preconditions (a publication must carry at least
one page; the sequence number must be positive), assigns UUIDv7 identities
to the chapter and every page, numbers the pages 1..N in the order the
content references were supplied, and hands the assembled aggregate to the
repository's single-transaction publish.

Parameters:
  - context: context.Context
  - actorID: string (Acting user; must own the target series)
  - seriesID: string (UUID of the target series)
  - title: string (Optional chapter title)
  - number: int (Per-series sequence number, unique)
  - contentRefs: []string (Page image locations in reading order)

Returns:
  - *Chapter: The published aggregate with Pages populated
  - error: Validation, NotFound, Forbidden, Conflict, or storage errors
*/
func (service *Service) PublishChapter(context context.Context, actorID, seriesID, title string, number int, contentRefs []string) (*Chapter, error) {

	// Precondition validation
	validator := &validate.Validator{}
	validator.Required(FieldSeriesID, seriesID).UUID(FieldSeriesID, seriesID)
	validator.Positive(FieldNumber, number)
	validator.NotEmpty(FieldPages, len(contentRefs))
	validator.MaxLen(FieldTitle, title, 300)

	for _, ref := range contentRefs {
		if ref == "" {
			validator.Custom(FieldPages, true, "page content references must be non-empty")
			break
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Aggregate assembly: identities and 1..N page numbering in input order
	record := &Chapter{
		ID:       uuidv7.Must(),
		SeriesID: seriesID,
		Title:    title,
		Number:   number,
	}

	for index, ref := range contentRefs {
		record.Pages = append(record.Pages, &Page{
			ID:         uuidv7.Must(),
			ChapterID:  record.ID,
			PageNumber: index + 1,
			ContentURL: ref,
		})
	}

	// Single-transaction persistence
	if err := service.chapterRepo.Publish(context, actorID, record); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_published",
		slog.String("chapter_id", record.ID),
		slog.String("series_id", seriesID),
		slog.String("actor_id", actorID),
		slog.Int("number", number),
		slog.Int("page_count", record.PageCount),
	)

	return record, nil
}

// # Reads

/*
GetChapterWithPages returns a chapter and its complete ordered page list.

Description: The repository serves both reads from one database snapshot, so
the returned PageCount always equals len(Pages) regardless of concurrent
publications.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Chapter: Entity with Pages populated
  - error: NotFound if missing
*/
func (service *Service) GetChapterWithPages(context context.Context, id string) (*Chapter, error) {
	return service.chapterRepo.FindWithPages(context, id)
}

/*
ListChapters returns a series' chapters ordered by sequence number.

Parameters:
  - context: context.Context
  - seriesID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Chapter: Ordered chapter headers (no page bodies)
  - int: Total chapter count for the series
  - error: Repository level errors
*/
func (service *Service) ListChapters(context context.Context, seriesID string, limit, offset int) ([]*Chapter, int, error) {
	return service.chapterRepo.ListBySeries(context, seriesID, limit, offset)
}
