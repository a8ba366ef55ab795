// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import "context"

// # Rating Data Access

// RatingRepository defines the data access contract for the rating domain.
type RatingRepository interface {

	/*
		Upsert inserts or overwrites the actor's rating for a series and
		recomputes the series' rating aggregates in the same transaction.

		The transaction locks the series row FOR UPDATE first (which also
		validates the series exists), upserts the rating keyed on
		(seriesid, userid), recomputes COUNT and AVG over all ratings of
		the series, and writes both back to the series row. Concurrent
		submissions against the same series serialize on the row lock, so
		the last committed aggregates always reflect every stored rating.

		Parameters:
		  - context: context.Context
		  - rating: *Rating (SeriesID, UserID, Score, Comment populated)

		Returns:
		  - *Aggregate: The recomputed summary written to the series
		  - error: NotFound (absent series) or storage failures
	*/
	Upsert(context context.Context, rating *Rating) (*Aggregate, error)

	/*
		ListBySeries returns a series' ratings, newest first, with the
		rater display names joined in.

		Parameters:
		  - context: context.Context
		  - seriesID: string (UUID)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Rating: Slice of ratings ordered by submission time descending
		  - int: Total rating count for the series
		  - error: Database retrieval failures
	*/
	ListBySeries(context context.Context, seriesID string, limit, offset int) ([]*Rating, int, error)
}
