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

const detectionColumns = `id, text, language_code, language_name, confidence, api_version,
	created_at, updated_at, deleted, deleted_at`

func scanLanguageDetection(row pgx.Row) (*models.LanguageDetection, error) {
	var d models.LanguageDetection
	err := row.Scan(
		&d.ID,
		&d.Text,
		&d.DetectedLanguage.Code,
		&d.DetectedLanguage.Name,
		&d.Confidence,
		&d.APIVersion,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Deleted,
		&d.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanLanguageDetections(rows pgx.Rows) ([]models.LanguageDetection, error) {
	defer rows.Close()

	detections := []models.LanguageDetection{}
	for rows.Next() {
		d, err := scanLanguageDetection(rows)
		if err != nil {
			return nil, err
		}
		detections = append(detections, *d)
	}

	return detections, rows.Err()
}

// CreateLanguageDetection inserts a detection, assigning an ID when unset.
func (d *DB) CreateLanguageDetection(ctx context.Context, det *models.LanguageDetection) error {
	if det.ID == uuid.Nil {
		det.ID = uuid.New()
	}

	query := `
		INSERT INTO language_detections (` + detectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := d.Pool.Exec(ctx, query,
		det.ID,
		det.Text,
		det.DetectedLanguage.Code,
		det.DetectedLanguage.Name,
		det.Confidence,
		det.APIVersion,
		det.CreatedAt,
		det.UpdatedAt,
		det.Deleted,
		det.DeletedAt,
	)
	return err
}

// GetLanguageDetection retrieves a detection by ID, deleted or not.
func (d *DB) GetLanguageDetection(ctx context.Context, id uuid.UUID) (*models.LanguageDetection, error) {
	query := `SELECT ` + detectionColumns + ` FROM language_detections WHERE id = $1`
	return scanLanguageDetection(d.Pool.QueryRow(ctx, query, id))
}

// UpdateLanguageDetection overwrites every column of an existing detection.
func (d *DB) UpdateLanguageDetection(ctx context.Context, det *models.LanguageDetection) error {
	query := `
		UPDATE language_detections
		SET text = $2, language_code = $3, language_name = $4, confidence = $5, api_version = $6,
			created_at = $7, updated_at = $8, deleted = $9, deleted_at = $10
		WHERE id = $1
	`

	tag, err := d.Pool.Exec(ctx, query,
		det.ID,
		det.Text,
		det.DetectedLanguage.Code,
		det.DetectedLanguage.Name,
		det.Confidence,
		det.APIVersion,
		det.CreatedAt,
		det.UpdatedAt,
		det.Deleted,
		det.DeletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteLanguageDetection permanently removes a detection.
func (d *DB) DeleteLanguageDetection(ctx context.Context, id uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM language_detections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListLanguageDetections returns detections matching f, newest first.
func (d *DB) ListLanguageDetections(ctx context.Context, f store.DetectionFilter) ([]models.LanguageDetection, error) {
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
	if f.LanguageCode != "" {
		add("LOWER(language_code) = LOWER($%d)", f.LanguageCode)
	}
	if f.MinConfidence != nil {
		add("confidence > $%d", *f.MinConfidence)
	}

	query := `SELECT ` + detectionColumns + ` FROM language_detections`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanLanguageDetections(rows)
}

// PurgeDeletedLanguageDetections hard-deletes detections soft-deleted before the cutoff.
func (d *DB) PurgeDeletedLanguageDetections(ctx context.Context, before time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx,
		`DELETE FROM language_detections WHERE deleted = TRUE AND deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
