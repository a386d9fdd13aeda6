package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hackhub/internal/models"
	"hackhub/internal/store"
)

// jobSearchColumns is the standard column list for job search result queries.
const jobSearchColumns = `id, query, location, page, results_per_page, jobs, metadata,
	searched_at, updated_at, deleted, deleted_at`

func scanJobSearchResult(row pgx.Row) (*models.JobSearchResult, error) {
	var r models.JobSearchResult
	err := row.Scan(
		&r.ID,
		&r.Query,
		&r.Location,
		&r.Page,
		&r.ResultsPerPage,
		&r.Jobs,
		&r.Metadata,
		&r.SearchedAt,
		&r.UpdatedAt,
		&r.Deleted,
		&r.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanJobSearchResults(rows pgx.Rows) ([]models.JobSearchResult, error) {
	defer rows.Close()

	results := []models.JobSearchResult{}
	for rows.Next() {
		r, err := scanJobSearchResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	return results, rows.Err()
}

// CreateJobSearchResult inserts a job search result, assigning an ID when unset.
func (d *DB) CreateJobSearchResult(ctx context.Context, r *models.JobSearchResult) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	normalizeJobSearchResult(r)

	query := `
		INSERT INTO job_search_results (` + jobSearchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := d.Pool.Exec(ctx, query,
		r.ID,
		r.Query,
		r.Location,
		r.Page,
		r.ResultsPerPage,
		r.Jobs,
		r.Metadata,
		r.SearchedAt,
		r.UpdatedAt,
		r.Deleted,
		r.DeletedAt,
	)
	return err
}

// GetJobSearchResult retrieves a job search result by ID, deleted or not.
func (d *DB) GetJobSearchResult(ctx context.Context, id uuid.UUID) (*models.JobSearchResult, error) {
	query := `SELECT ` + jobSearchColumns + ` FROM job_search_results WHERE id = $1`
	return scanJobSearchResult(d.Pool.QueryRow(ctx, query, id))
}

// UpdateJobSearchResult overwrites every column of an existing result.
func (d *DB) UpdateJobSearchResult(ctx context.Context, r *models.JobSearchResult) error {
	normalizeJobSearchResult(r)

	query := `
		UPDATE job_search_results
		SET query = $2, location = $3, page = $4, results_per_page = $5, jobs = $6,
			metadata = $7, searched_at = $8, updated_at = $9, deleted = $10, deleted_at = $11
		WHERE id = $1
	`

	tag, err := d.Pool.Exec(ctx, query,
		r.ID,
		r.Query,
		r.Location,
		r.Page,
		r.ResultsPerPage,
		r.Jobs,
		r.Metadata,
		r.SearchedAt,
		r.UpdatedAt,
		r.Deleted,
		r.DeletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListJobSearchResults returns results matching f, newest search first.
func (d *DB) ListJobSearchResults(ctx context.Context, f store.JobSearchFilter) ([]models.JobSearchResult, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	switch f.Deleted {
	case store.ExcludeDeleted:
		where = append(where, "deleted = FALSE")
	case store.OnlyDeleted:
		where = append(where, "deleted = TRUE")
	}
	if f.Query != "" {
		add("query ILIKE '%%' || $%d || '%%'", escapeLike(f.Query))
	}
	if f.Location != "" {
		add("location ILIKE '%%' || $%d || '%%'", escapeLike(f.Location))
	}
	if f.Since != nil {
		add("searched_at > $%d", *f.Since)
	}

	query := `SELECT ` + jobSearchColumns + ` FROM job_search_results`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY searched_at DESC`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanJobSearchResults(rows)
}

// PurgeDeletedJobSearchResults hard-deletes results soft-deleted before the cutoff.
func (d *DB) PurgeDeletedJobSearchResults(ctx context.Context, before time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx,
		`DELETE FROM job_search_results WHERE deleted = TRUE AND deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// JSONB columns are NOT NULL.
func normalizeJobSearchResult(r *models.JobSearchResult) {
	if r.Jobs == nil {
		r.Jobs = []models.Job{}
	}
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
