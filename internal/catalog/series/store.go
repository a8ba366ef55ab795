// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import "context"

// # Series Data Access

// SeriesRepository defines the data access contract for the series domain.
type SeriesRepository interface {

	/*
		List returns a filtered, paginated slice of series and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for genre, status, author, search)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Series: Slice of matching publication records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Series, int, error)

	/*
		FindByID returns the series with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Series: The hydrated domain entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Series, error)

	/*
		FindBySlug returns the series matching the unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Series: The hydrated domain entity
		  - error: NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Series, error)

	/*
		Create persists a new series to the store.

		Parameters:
		  - context: context.Context
		  - series: *Series (Metadata and initial state; aggregates start at zero)

		Returns:
		  - error: Conflict on duplicate slug, or storage failures
	*/
	Create(context context.Context, series *Series) error

	/*
		Update persists changes to a series' mutable metadata fields.

		Only the owner may update; the repository enforces this inside the
		same transaction that performs the write.

		Parameters:
		  - context: context.Context
		  - actorID: string (Acting user, compared to the stored author)
		  - series: *Series (Target ID and modified attributes)

		Returns:
		  - error: NotFound, Forbidden, or storage failures
	*/
	Update(context context.Context, actorID string, series *Series) error
}
