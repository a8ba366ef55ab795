// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating provides the PostgreSQL implementation for rating persistence.

The submission path is the part of the system most exposed to read-modify-
write races, and is built entirely on transactional primitives:
  - Row Locks: SELECT ... FOR UPDATE on the series row serializes concurrent
    submissions per series before any rating row is touched.
  - Upsert: INSERT ... ON CONFLICT (seriesid, userid) DO UPDATE collapses
    create and overwrite into one statement.
  - Full Recompute: Aggregates come from COUNT/AVG over the stored ratings
    every time; nothing is incrementally patched.
*/
package rating

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsuzuki/internal/platform/database/schema"
	"github.com/taibuivan/tsuzuki/internal/platform/dberr"
)

// # PostgreSQL Repositories

// ratingRepository implements the [RatingRepository] interface using pgx.
type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository constructs a PostgreSQL backed rating store.
func NewRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &ratingRepository{pool: pool}
}

// # Submission

/*
Upsert inserts or overwrites a rating and recomputes the series aggregates.

Description: Four steps inside one transaction:

 1. Lock the series row FOR UPDATE. An absent series surfaces as NotFound
    here, before any rating write. The lock serializes every aggregate
    mutation for this series.
 2. INSERT ... ON CONFLICT (seriesid, userid) DO UPDATE the rating row.
    Resubmission with identical values is a no-op in effect but still
    refreshes updatedat and re-derives the aggregates.
 3. SELECT COUNT(*) and ROUND(AVG(score), 1) over all ratings of the series.
 4. Write both aggregates back to the locked series row.

Because step 3 runs after step 2 in the same transaction, the recomputed
summary always includes the rating just written.

Parameters:
  - context: context.Context
  - rating: *Rating (SeriesID, UserID, Score, Comment populated)

Returns:
  - *Aggregate: The summary written to the series row
  - error: apperr.NotFound or storage failures
*/
func (repository *ratingRepository) Upsert(context context.Context, rating *Rating) (*Aggregate, error) {

	// Transaction Context Instantiation
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}
	defer transaction.Rollback(context)

	// Step 1: Series existence check under the row lock.
	// Ratings carry no ownership requirement, so only the lock matters here.
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CatalogSeries.ID, schema.CatalogSeries.Table, schema.CatalogSeries.ID)

	var lockedID string
	if err := transaction.QueryRow(context, lockQuery, rating.SeriesID).Scan(&lockedID); err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}

	// Step 2: Rating upsert keyed on (seriesid, userid).
	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s, %s
	`,
		schema.SocialRating.Table,
		schema.SocialRating.ID, schema.SocialRating.SeriesID, schema.SocialRating.UserID,
		schema.SocialRating.Score, schema.SocialRating.Comment,
		schema.SocialRating.SeriesID, schema.SocialRating.UserID,
		schema.SocialRating.Score, schema.SocialRating.Score,
		schema.SocialRating.Comment, schema.SocialRating.Comment,
		schema.SocialRating.UpdatedAt,
		schema.SocialRating.ID, schema.SocialRating.CreatedAt, schema.SocialRating.UpdatedAt,
	)

	err = transaction.QueryRow(context, upsertQuery,
		rating.ID,
		rating.SeriesID,
		rating.UserID,
		rating.Score,
		rating.Comment,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}

	// Step 3: Full aggregate recompute over the stored facts.
	recomputeQuery := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(ROUND(AVG(%s), 1), 0)
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialRating.Score,
		schema.SocialRating.Table,
		schema.SocialRating.SeriesID,
	)

	var aggregate Aggregate
	err = transaction.QueryRow(context, recomputeQuery, rating.SeriesID).Scan(&aggregate.Count, &aggregate.Average)
	if err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}

	// Step 4: Publish the recomputed summary on the locked series row.
	publishQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3
	`,
		schema.CatalogSeries.Table,
		schema.CatalogSeries.RatingAvg, schema.CatalogSeries.RatingCount,
		schema.CatalogSeries.UpdatedAt, schema.CatalogSeries.ID,
	)

	if _, err := transaction.Exec(context, publishQuery, aggregate.Average, aggregate.Count, rating.SeriesID); err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}

	// Final Persistence Validation
	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}

	return &aggregate, nil
}

// # Listing

/*
ListBySeries returns a series' ratings, newest first.

Description: Joins the rater's account for display names and carries the
total count via COUNT(*) OVER().

Parameters:
  - context: context.Context
  - seriesID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Rating: Ratings ordered by creation time descending
  - int: Total rating count for the series
  - error: Database execution errors
*/
func (repository *ratingRepository) ListBySeries(context context.Context, seriesID string, limit, offset int) ([]*Rating, int, error) {

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s AS username,
			r.%s, r.%s, r.%s, r.%s,
			COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialRating.ID, schema.SocialRating.SeriesID, schema.SocialRating.UserID,
		schema.UsersAccount.DisplayName,
		schema.SocialRating.Score, schema.SocialRating.Comment,
		schema.SocialRating.CreatedAt, schema.SocialRating.UpdatedAt,
		schema.SocialRating.Table,
		schema.UsersAccount.Table, schema.SocialRating.UserID, schema.UsersAccount.ID,
		schema.SocialRating.SeriesID,
		schema.SocialRating.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, seriesID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Rating", "")
	}
	defer rows.Close()

	var collection []*Rating
	var totalCount int

	for rows.Next() {
		var record Rating
		err := rows.Scan(
			&record.ID,
			&record.SeriesID,
			&record.UserID,
			&record.UserName,
			&record.Score,
			&record.Comment,
			&record.CreatedAt,
			&record.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Rating", "")
		}
		collection = append(collection, &record)
	}

	return collection, totalCount, nil
}
