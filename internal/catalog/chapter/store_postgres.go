// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter provides the PostgreSQL implementation for chapter persistence.

Publication is the write-heavy path of the system and is built around three
Postgres mechanisms:
  - Row Locks: SELECT ... FOR UPDATE on the series row serializes concurrent
    publications per series and carries the ownership check.
  - Batching: Page inserts are pipelined with pgx.Batch to keep multi-page
    chapters to a bounded number of round-trips.
  - Unique Constraints: (seriesid, sequencenumber) rejects duplicate chapter
    numbers at the storage layer, surfaced as Conflict.

Snapshot reads use a read-only REPEATABLE READ transaction so the chapter
header and its page list come from the same database snapshot.
*/
package chapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/platform/database/schema"
	"github.com/taibuivan/tsuzuki/internal/platform/dberr"
)

// # PostgreSQL Repositories

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// # Publication

/*
Publish atomically persists a chapter, its pages, and the series counter bump.

Description: The transaction proceeds in four steps, all inside one
transaction boundary:

 1. Lock the series row FOR UPDATE and compare its author to the actor.
 2. Insert the chapter row with pagecount = len(Pages). The unique
    (seriesid, sequencenumber) constraint turns racing duplicates into
    a Conflict for the loser after the lock is released.
 3. Batch-insert the pages numbered 1..N in the order they were supplied.
 4. Increment the series chaptercount and touch updatedat.

The row lock held from step 1 means two publications against the same series
run strictly one after the other, so the counter increment is never lost.
Any error rolls the whole unit back.

Parameters:
  - context: context.Context
  - actorID: string (Acting user)
  - chapter: *Chapter (Pages pre-populated in input order)

Returns:
  - error: apperr.NotFound, apperr.Forbidden, apperr.Conflict, or storage failures
*/
func (repository *chapterRepository) Publish(context context.Context, actorID string, chapter *Chapter) error {

	// Transaction Context Instantiation
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Series", "")
	}
	defer transaction.Rollback(context)

	// Step 1: Ownership guard under the series row lock.
	// The lock doubles as the per-series serializer for the counter below.
	if err := lockOwnedSeries(context, transaction, chapter.SeriesID, actorID); err != nil {
		return err
	}

	// Step 2: Chapter row insertion with the derived page count.
	chapter.PageCount = len(chapter.Pages)

	insertChapter := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.ID, schema.CatalogChapter.SeriesID, schema.CatalogChapter.Title,
		schema.CatalogChapter.Number, schema.CatalogChapter.PageCount,
		schema.CatalogChapter.CreatedAt,
	)

	err = transaction.QueryRow(context, insertChapter,
		chapter.ID,
		chapter.SeriesID,
		chapter.Title,
		chapter.Number,
		chapter.PageCount,
	).Scan(&chapter.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Series", "A chapter with this number already exists for the series")
	}

	// Step 3: Page batch insertion, numbered in input order.
	batch := &pgx.Batch{}
	insertPage := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`, schema.CatalogPage.Table, schema.CatalogPage.ID, schema.CatalogPage.ChapterID,
		schema.CatalogPage.PageNumber, schema.CatalogPage.ContentURL)

	for _, page := range chapter.Pages {
		batch.Queue(insertPage, page.ID, page.ChapterID, page.PageNumber, page.ContentURL)
	}

	result := transaction.SendBatch(context, batch)
	for range chapter.Pages {
		if _, err := result.Exec(); err != nil {
			result.Close()
			return dberr.Wrap(err, "Chapter", "Duplicate page number within the chapter")
		}
	}
	if err := result.Close(); err != nil {
		return dberr.Wrap(err, "Chapter", "")
	}

	// Step 4: Counter maintenance on the locked series row.
	bumpCounter := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1, %s = NOW() WHERE %s = $1
	`,
		schema.CatalogSeries.Table,
		schema.CatalogSeries.ChapterCount, schema.CatalogSeries.ChapterCount,
		schema.CatalogSeries.UpdatedAt, schema.CatalogSeries.ID,
	)

	if _, err := transaction.Exec(context, bumpCounter, chapter.SeriesID); err != nil {
		return dberr.Wrap(err, "Series", "")
	}

	// Final Persistence Validation
	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "Series", "")
	}

	return nil
}

// # Snapshot Reads

/*
FindWithPages returns a chapter and its ordered pages as one snapshot.

Description: Runs both reads in a read-only REPEATABLE READ transaction.
A publication committing between the two statements can therefore never
produce a response whose pagecount disagrees with the page slice.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Chapter: Entity with Pages populated, ordered by page number
  - error: apperr.NotFound on absent rows
*/
func (repository *chapterRepository) FindWithPages(context context.Context, id string) (*Chapter, error) {

	transaction, err := repository.pool.BeginTx(context, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "")
	}
	defer transaction.Rollback(context)

	// Chapter header read
	headerQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogChapter.ID, schema.CatalogChapter.SeriesID, schema.CatalogChapter.Title,
		schema.CatalogChapter.Number, schema.CatalogChapter.PageCount, schema.CatalogChapter.CreatedAt,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.ID,
	)

	var record Chapter
	err = transaction.QueryRow(context, headerQuery, id).Scan(
		&record.ID,
		&record.SeriesID,
		&record.Title,
		&record.Number,
		&record.PageCount,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "")
	}

	// Ordered page read from the same snapshot
	pagesQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogPage.ID, schema.CatalogPage.ChapterID, schema.CatalogPage.PageNumber,
		schema.CatalogPage.ContentURL,
		schema.CatalogPage.Table,
		schema.CatalogPage.ChapterID,
		schema.CatalogPage.PageNumber,
	)

	rows, err := transaction.Query(context, pagesQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "")
	}
	defer rows.Close()

	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.ChapterID, &page.PageNumber, &page.ContentURL); err != nil {
			return nil, dberr.Wrap(err, "Chapter", "")
		}
		record.Pages = append(record.Pages, &page)
	}
	rows.Close()

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "Chapter", "")
	}

	return &record, nil
}

/*
ListBySeries returns a series' chapters ordered by sequence number.

Description: Header-only listing; page bodies stay out of list views. The
total count arrives via COUNT(*) OVER() in the same result set.

Parameters:
  - context: context.Context
  - seriesID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Chapter: Ordered slice of chapter headers
  - int: Total chapter count for the series
  - error: Database execution errors
*/
func (repository *chapterRepository) ListBySeries(context context.Context, seriesID string, limit, offset int) ([]*Chapter, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogChapter.ID, schema.CatalogChapter.SeriesID, schema.CatalogChapter.Title,
		schema.CatalogChapter.Number, schema.CatalogChapter.PageCount, schema.CatalogChapter.CreatedAt,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.SeriesID,
		schema.CatalogChapter.Number,
	)

	rows, err := repository.pool.Query(context, query, seriesID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Chapter", "")
	}
	defer rows.Close()

	var collection []*Chapter
	var totalCount int

	for rows.Next() {
		var record Chapter
		err := rows.Scan(
			&record.ID,
			&record.SeriesID,
			&record.Title,
			&record.Number,
			&record.PageCount,
			&record.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Chapter", "")
		}
		collection = append(collection, &record)
	}

	return collection, totalCount, nil
}

// # Ownership Guard

// lockOwnedSeries locks the series row FOR UPDATE and verifies the actor is
// its author. The lock is held until the surrounding transaction ends, which
// is what serializes counter mutations per series.
func lockOwnedSeries(context context.Context, transaction pgx.Tx, seriesID, actorID string) error {

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CatalogSeries.AuthorID, schema.CatalogSeries.Table, schema.CatalogSeries.ID)

	var authorID string
	if err := transaction.QueryRow(context, query, seriesID).Scan(&authorID); err != nil {
		return dberr.Wrap(err, "Series", "")
	}

	if authorID != actorID {
		return apperr.Forbidden("Only the series author may publish chapters")
	}

	return nil
}
