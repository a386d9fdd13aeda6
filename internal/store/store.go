// Package store defines the persistence contracts shared by the PostgreSQL
// and Badger backends.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hackhub/internal/models"
)

// ErrNotFound is returned when no record matches the requested key.
var ErrNotFound = errors.New("record not found")

// DeletedFilter selects records by soft-delete state.
type DeletedFilter int

const (
	ExcludeDeleted DeletedFilter = iota
	OnlyDeleted
	IncludeDeleted
)

// Keep reports whether a record with the given deleted flag passes the filter.
func (f DeletedFilter) Keep(deleted bool) bool {
	switch f {
	case OnlyDeleted:
		return deleted
	case IncludeDeleted:
		return true
	default:
		return !deleted
	}
}

// JobSearchFilter narrows job search result listings.
// Query and Location are case-insensitive substring matches.
type JobSearchFilter struct {
	Deleted  DeletedFilter
	Query    string
	Location string
	Since    *time.Time // searchedAt strictly after
}

// Match applies the filter to a single record.
func (f JobSearchFilter) Match(r *models.JobSearchResult) bool {
	if !f.Deleted.Keep(r.Deleted) {
		return false
	}
	if f.Query != "" && !containsFold(r.Query, f.Query) {
		return false
	}
	if f.Location != "" && !containsFold(r.Location, f.Location) {
		return false
	}
	if f.Since != nil && !r.SearchedAt.After(*f.Since) {
		return false
	}
	return true
}

// DetectionFilter narrows language detection listings.
type DetectionFilter struct {
	Deleted       DeletedFilter
	LanguageCode  string
	MinConfidence *float64 // confidence strictly greater than
}

// Match applies the filter to a single record.
func (f DetectionFilter) Match(d *models.LanguageDetection) bool {
	if !f.Deleted.Keep(d.Deleted) {
		return false
	}
	if f.LanguageCode != "" && !strings.EqualFold(d.DetectedLanguage.Code, f.LanguageCode) {
		return false
	}
	if f.MinConfidence != nil && d.Confidence <= *f.MinConfidence {
		return false
	}
	return true
}

// JobSearchResults persists job search results.
type JobSearchResults interface {
	CreateJobSearchResult(ctx context.Context, r *models.JobSearchResult) error
	GetJobSearchResult(ctx context.Context, id uuid.UUID) (*models.JobSearchResult, error)
	UpdateJobSearchResult(ctx context.Context, r *models.JobSearchResult) error
	ListJobSearchResults(ctx context.Context, f JobSearchFilter) ([]models.JobSearchResult, error)
	PurgeDeletedJobSearchResults(ctx context.Context, before time.Time) (int64, error)
}

// LanguageDetections persists language detections.
type LanguageDetections interface {
	CreateLanguageDetection(ctx context.Context, d *models.LanguageDetection) error
	GetLanguageDetection(ctx context.Context, id uuid.UUID) (*models.LanguageDetection, error)
	UpdateLanguageDetection(ctx context.Context, d *models.LanguageDetection) error
	DeleteLanguageDetection(ctx context.Context, id uuid.UUID) error
	ListLanguageDetections(ctx context.Context, f DetectionFilter) ([]models.LanguageDetection, error)
	PurgeDeletedLanguageDetections(ctx context.Context, before time.Time) (int64, error)
}

// Productos persists catalog products.
type Productos interface {
	ListProductos(ctx context.Context) ([]models.Producto, error)
	GetProducto(ctx context.Context, id int64) (*models.Producto, error)
	CreateProducto(ctx context.Context, p *models.Producto) error
	UpdateProducto(ctx context.Context, p *models.Producto) error
	DeleteProducto(ctx context.Context, id int64) error
	SearchProductos(ctx context.Context, nombre string) ([]models.Producto, error)
}

// Collection names reported by RecordCounter.
const (
	CollectionJobSearchResults   = "job_search_results"
	CollectionLanguageDetections = "language_detections"
	CollectionProductos          = "productos"
)

// RecordCount is the number of records in a collection with a given state.
type RecordCount struct {
	Collection string
	State      string // "active" or "deleted"
	Count      int64
}

// RecordCounter reports record counts for metrics.
type RecordCounter interface {
	CountRecords(ctx context.Context) ([]RecordCount, error)
}

// RecordCounterFunc adapts a function to RecordCounter.
type RecordCounterFunc func(ctx context.Context) ([]RecordCount, error)

// CountRecords calls f(ctx).
func (f RecordCounterFunc) CountRecords(ctx context.Context) ([]RecordCount, error) {
	return f(ctx)
}

// State returns the RecordCount state label for a deleted flag.
func State(deleted bool) string {
	if deleted {
		return "deleted"
	}
	return "active"
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
