// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series provides the PostgreSQL implementation for the catalog's data access.

It leans on a few Postgres features to keep reads cheap and writes safe:
  - Window Functions: COUNT(*) OVER() returns the total result count without
    a second query.
  - Row Locks: SELECT ... FOR UPDATE on the series row serializes ownership
    checks with the write that depends on them.
  - Join Denormalization: The author display name is resolved in the same
    round-trip instead of a follow-up lookup.
*/
package series

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/platform/database/schema"
	"github.com/taibuivan/tsuzuki/internal/platform/dberr"
)

// # PostgreSQL Repositories

// seriesRepository implements the [SeriesRepository] interface using pgx.
type seriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository constructs a PostgreSQL backed series store.
func NewSeriesRepository(pool *pgxpool.Pool) SeriesRepository {
	return &seriesRepository{pool: pool}
}

// # Series Repository Implementation

/*
List returns a filtered, paginated slice of series and the total count.

Description: Uses COUNT(*) OVER() so the total matching count arrives with
the page itself, and joins the author account for display names in a single
round-trip.

Parameters:
  - context: context.Context
  - filter: Filter (Genre, status, author, title search)
  - limit: int
  - offset: int

Returns:
  - []*Series: Slice of hydrated series entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *seriesRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Series, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s, s.%s, a.%s AS authorname,
			s.%s, s.%s, s.%s,
			s.%s, s.%s, s.%s, s.%s, s.%s,
			COUNT(*) OVER() AS total_count
		FROM %s s
		JOIN %s a ON s.%s = a.%s
		WHERE TRUE
	`,
		schema.CatalogSeries.ID,
		schema.CatalogSeries.Title,
		schema.CatalogSeries.Slug,
		schema.CatalogSeries.Description,
		schema.CatalogSeries.AuthorID,
		schema.UsersAccount.DisplayName,
		schema.CatalogSeries.Genre,
		schema.CatalogSeries.Status,
		schema.CatalogSeries.CoverURL,
		schema.CatalogSeries.ChapterCount,
		schema.CatalogSeries.RatingAvg,
		schema.CatalogSeries.RatingCount,
		schema.CatalogSeries.CreatedAt,
		schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.Table,
		schema.UsersAccount.Table,
		schema.CatalogSeries.AuthorID, schema.UsersAccount.ID,
	))

	// Apply Filters (Dynamic WHERE clause construction)
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.CatalogSeries.Genre, argID))
		args = append(args, filter.Genre)
		argID++
	}

	// Lifecycle state filtering
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.CatalogSeries.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	// Authorship filtering
	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.CatalogSeries.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	// Title substring search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s ILIKE $%d", schema.CatalogSeries.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Ordering and pagination limits
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.%s DESC", schema.CatalogSeries.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Series", "")
	}
	defer rows.Close()

	// Row Iteration and Entity Hydration
	var collection []*Series
	var totalCount int

	for rows.Next() {
		var record Series
		err := rows.Scan(
			&record.ID,
			&record.Title,
			&record.Slug,
			&record.Description,
			&record.AuthorID,
			&record.AuthorName,
			&record.Genre,
			&record.Status,
			&record.CoverURL,
			&record.ChapterCount,
			&record.RatingAvg,
			&record.RatingCount,
			&record.CreatedAt,
			&record.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Series", "")
		}
		collection = append(collection, &record)
	}

	return collection, totalCount, nil
}

/*
FindByID returns the series with the given ID.

Description: Single-statement read, so the aggregates and metadata form one
consistent snapshot. The author display name is joined in the same query.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Series: The hydrated domain entity
  - error: apperr.NotFound on absent rows
*/
func (repository *seriesRepository) FindByID(context context.Context, id string) (*Series, error) {
	return repository.findByColumn(context, schema.CatalogSeries.ID, id)
}

/*
FindBySlug returns the series matching the unique SEO identifier.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Series: The hydrated domain entity
  - error: apperr.NotFound on absent rows
*/
func (repository *seriesRepository) FindBySlug(context context.Context, slug string) (*Series, error) {
	return repository.findByColumn(context, schema.CatalogSeries.Slug, slug)
}

// findByColumn is the shared single-row lookup for ID and slug resolution.
func (repository *seriesRepository) findByColumn(context context.Context, column, value string) (*Series, error) {

	query := fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s, s.%s, a.%s AS authorname,
			s.%s, s.%s, s.%s,
			s.%s, s.%s, s.%s, s.%s, s.%s
		FROM %s s
		JOIN %s a ON s.%s = a.%s
		WHERE s.%s = $1
	`,
		schema.CatalogSeries.ID, schema.CatalogSeries.Title, schema.CatalogSeries.Slug,
		schema.CatalogSeries.Description, schema.CatalogSeries.AuthorID, schema.UsersAccount.DisplayName,
		schema.CatalogSeries.Genre, schema.CatalogSeries.Status, schema.CatalogSeries.CoverURL,
		schema.CatalogSeries.ChapterCount, schema.CatalogSeries.RatingAvg, schema.CatalogSeries.RatingCount,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.Table,
		schema.UsersAccount.Table, schema.CatalogSeries.AuthorID, schema.UsersAccount.ID,
		column,
	)

	var record Series
	err := repository.pool.QueryRow(context, query, value).Scan(
		&record.ID,
		&record.Title,
		&record.Slug,
		&record.Description,
		&record.AuthorID,
		&record.AuthorName,
		&record.Genre,
		&record.Status,
		&record.CoverURL,
		&record.ChapterCount,
		&record.RatingAvg,
		&record.RatingCount,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Series", "")
	}

	return &record, nil
}

/*
Create persists a new series to the store.

Description: Aggregates (chaptercount, ratingavg, ratingcount) start at their
column defaults of zero; they are only ever mutated under the series row lock
by the chapter and rating workflows.

Parameters:
  - context: context.Context
  - series: *Series (Metadata and initial state)

Returns:
  - error: apperr.Conflict on duplicate slug, or storage failures
*/
func (repository *seriesRepository) Create(context context.Context, series *Series) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CatalogSeries.Table,
		schema.CatalogSeries.ID, schema.CatalogSeries.Title, schema.CatalogSeries.Slug,
		schema.CatalogSeries.Description, schema.CatalogSeries.AuthorID, schema.CatalogSeries.Genre,
		schema.CatalogSeries.Status, schema.CatalogSeries.CoverURL,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		series.ID,
		series.Title,
		series.Slug,
		series.Description,
		series.AuthorID,
		series.Genre,
		series.Status,
		series.CoverURL,
	).Scan(&series.CreatedAt, &series.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Series", "A series with this slug already exists")
	}

	return nil
}

/*
Update persists changes to a series' mutable metadata fields.

Description: Locks the series row FOR UPDATE, verifies the actor owns it,
then writes the metadata inside the same transaction. The lock closes the
window between the ownership read and the write.

Parameters:
  - context: context.Context
  - actorID: string (Acting user)
  - series: *Series (Target ID and modified attributes)

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or storage failures
*/
func (repository *seriesRepository) Update(context context.Context, actorID string, series *Series) error {

	// Transaction Context Instantiation
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Series", "")
	}
	defer transaction.Rollback(context)

	// Ownership guard under the row lock
	if err := lockOwnedSeries(context, transaction, series.ID, actorID); err != nil {
		return err
	}

	// Metadata write
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6
	`,
		schema.CatalogSeries.Table,
		schema.CatalogSeries.Title, schema.CatalogSeries.Description, schema.CatalogSeries.Genre,
		schema.CatalogSeries.Status, schema.CatalogSeries.CoverURL, schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.ID,
	)

	_, err = transaction.Exec(context, query,
		series.Title,
		series.Description,
		series.Genre,
		series.Status,
		series.CoverURL,
		series.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "Series", "")
	}

	// Final Persistence Validation
	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "Series", "")
	}

	return nil
}

// # Ownership Guard

/*
lockOwnedSeries acquires the FOR UPDATE lock on a series row and verifies
the actor is its author.

Description: The SELECT ... FOR UPDATE both serializes concurrent mutators of
this series and returns the stored author for the ownership comparison, so
the check and the write that follows it are a single atomic unit.

Parameters:
  - context: context.Context
  - transaction: pgx.Tx (The open transaction the lock lives in)
  - seriesID: string (UUID)
  - actorID: string (Acting user)

Returns:
  - error: apperr.NotFound if the series is absent, apperr.Forbidden if the
    actor is not the author
*/
func lockOwnedSeries(context context.Context, transaction pgx.Tx, seriesID, actorID string) error {

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CatalogSeries.AuthorID, schema.CatalogSeries.Table, schema.CatalogSeries.ID)

	var authorID string
	if err := transaction.QueryRow(context, query, seriesID).Scan(&authorID); err != nil {
		return dberr.Wrap(err, "Series", "")
	}

	if authorID != actorID {
		return apperr.Forbidden("Only the series author may modify it")
	}

	return nil
}
