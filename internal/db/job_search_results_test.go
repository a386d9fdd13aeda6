package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"hackhub/internal/models"
	"hackhub/internal/store"
)

func newJobSearchResult(query, location string, searchedAt time.Time) *models.JobSearchResult {
	return &models.JobSearchResult{
		Query:          query,
		Location:       location,
		Page:           1,
		ResultsPerPage: 5,
		Jobs: []models.Job{
			{JobID: "abc", Title: "Go Developer", CompanyName: "Acme", RequiredSkills: []string{"Go"}},
		},
		SearchedAt: searchedAt,
		Metadata:   map[string]any{"status": "OK", "totalResults": float64(1)},
		Lifecycle:  models.Lifecycle{UpdatedAt: searchedAt},
	}
}

func TestCreateAndGetJobSearchResult(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	r := newJobSearchResult("golang", "madrid", now)
	if err := db.CreateJobSearchResult(ctx, r); err != nil {
		t.Fatalf("CreateJobSearchResult() error = %v", err)
	}
	if r.ID == uuid.Nil {
		t.Fatal("CreateJobSearchResult() did not set ID")
	}

	got, err := db.GetJobSearchResult(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetJobSearchResult() error = %v", err)
	}
	if got.Query != "golang" || got.Location != "madrid" {
		t.Errorf("GetJobSearchResult() = %q/%q, want golang/madrid", got.Query, got.Location)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].Title != "Go Developer" {
		t.Errorf("GetJobSearchResult() jobs = %+v", got.Jobs)
	}
	if got.Metadata["status"] != "OK" {
		t.Errorf("GetJobSearchResult() metadata = %v", got.Metadata)
	}
	if !got.SearchedAt.Equal(now) {
		t.Errorf("GetJobSearchResult() searchedAt = %v, want %v", got.SearchedAt, now)
	}
}

func TestGetJobSearchResult_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetJobSearchResult(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetJobSearchResult() error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestUpdateJobSearchResult(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	r := newJobSearchResult("golang", "", now)
	if err := db.CreateJobSearchResult(ctx, r); err != nil {
		t.Fatalf("CreateJobSearchResult() error = %v", err)
	}

	r.MarkDeleted(now.Add(time.Minute))
	if err := db.UpdateJobSearchResult(ctx, r); err != nil {
		t.Fatalf("UpdateJobSearchResult() error = %v", err)
	}

	got, err := db.GetJobSearchResult(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetJobSearchResult() error = %v", err)
	}
	if !got.Deleted || got.DeletedAt == nil {
		t.Errorf("UpdateJobSearchResult() deleted = %v, deletedAt = %v", got.Deleted, got.DeletedAt)
	}

	missing := newJobSearchResult("x", "", now)
	missing.ID = uuid.New()
	if err := db.UpdateJobSearchResult(ctx, missing); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateJobSearchResult() missing error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestListJobSearchResults(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	live := newJobSearchResult("Golang Developer", "Buenos Aires", base)
	newer := newJobSearchResult("Python Developer", "Lima", base.Add(10*time.Minute))
	gone := newJobSearchResult("Golang Lead", "Madrid", base.Add(20*time.Minute))
	gone.MarkDeleted(base.Add(30 * time.Minute))
	for _, r := range []*models.JobSearchResult{live, newer, gone} {
		if err := db.CreateJobSearchResult(ctx, r); err != nil {
			t.Fatalf("CreateJobSearchResult() error = %v", err)
		}
	}

	since := base.Add(5 * time.Minute)
	tests := []struct {
		name   string
		filter store.JobSearchFilter
		want   []uuid.UUID
	}{
		{"default excludes deleted", store.JobSearchFilter{}, []uuid.UUID{newer.ID, live.ID}},
		{"only deleted", store.JobSearchFilter{Deleted: store.OnlyDeleted}, []uuid.UUID{gone.ID}},
		{"include deleted", store.JobSearchFilter{Deleted: store.IncludeDeleted}, []uuid.UUID{gone.ID, newer.ID, live.ID}},
		{"query", store.JobSearchFilter{Deleted: store.IncludeDeleted, Query: "golang"}, []uuid.UUID{gone.ID, live.ID}},
		{"location", store.JobSearchFilter{Location: "aires"}, []uuid.UUID{live.ID}},
		{"since", store.JobSearchFilter{Since: &since}, []uuid.UUID{newer.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListJobSearchResults(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListJobSearchResults() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListJobSearchResults() returned %d results, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("result[%d] = %v, want %v", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestPurgeDeletedJobSearchResults(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	old := newJobSearchResult("old", "", now.Add(-48*time.Hour))
	old.MarkDeleted(now.Add(-47 * time.Hour))
	recent := newJobSearchResult("recent", "", now.Add(-time.Hour))
	recent.MarkDeleted(now.Add(-time.Minute))
	live := newJobSearchResult("live", "", now)
	for _, r := range []*models.JobSearchResult{old, recent, live} {
		if err := db.CreateJobSearchResult(ctx, r); err != nil {
			t.Fatalf("CreateJobSearchResult() error = %v", err)
		}
	}

	n, err := db.PurgeDeletedJobSearchResults(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeDeletedJobSearchResults() error = %v", err)
	}
	if n != 1 {
		t.Errorf("PurgeDeletedJobSearchResults() = %d, want 1", n)
	}
	if _, err := db.GetJobSearchResult(ctx, old.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("purged result still present: %v", err)
	}
	if _, err := db.GetJobSearchResult(ctx, recent.ID); err != nil {
		t.Errorf("recently deleted result was purged: %v", err)
	}
}
