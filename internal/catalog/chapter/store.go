// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for the chapter domain.
type ChapterRepository interface {

	/*
		Publish atomically persists a chapter, its ordered pages, and the
		owning series' incremented chapter counter.

		The entire operation runs in one transaction that begins by locking
		the series row FOR UPDATE, which both verifies ownership and
		serializes concurrent publications against the same series. Any
		failure rolls back every effect.

		Parameters:
		  - context: context.Context
		  - actorID: string (Acting user, compared to the series author)
		  - chapter: *Chapter (Entity with Pages pre-populated in input order)

		Returns:
		  - error: NotFound (absent series), Forbidden (non-author),
		    Conflict (duplicate sequence number), or storage failures
	*/
	Publish(context context.Context, actorID string, chapter *Chapter) error

	/*
		FindWithPages returns a chapter together with its complete ordered
		page list as one consistent snapshot.

		Both reads run in a single read-only REPEATABLE READ transaction so
		the page count and the page slice always agree.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Chapter: Entity with Pages populated, sorted by page number
		  - error: NotFound if missing
	*/
	FindWithPages(context context.Context, id string) (*Chapter, error)

	/*
		ListBySeries returns all chapters of a series ordered by sequence
		number, without page bodies.

		Parameters:
		  - context: context.Context
		  - seriesID: string (UUID)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Slice of chapters ordered by sequence number
		  - int: Total chapter count for the series
		  - error: Database retrieval failures
	*/
	ListBySeries(context context.Context, seriesID string, limit, offset int) ([]*Chapter, int, error)
}
