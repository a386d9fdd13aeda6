package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"hackhub/internal/models"
	"hackhub/internal/store"
	"hackhub/internal/testutil"
)

func TestPurgeOnce(t *testing.T) {
	st := testutil.BadgerStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seed := []struct {
		query     string
		deletedAt *time.Time
	}{
		{"old", ptr(now.Add(-48 * time.Hour))},
		{"recent", ptr(now.Add(-time.Hour))},
		{"live", nil},
	}
	for _, s := range seed {
		r := &models.JobSearchResult{Query: s.query, SearchedAt: now.Add(-72 * time.Hour)}
		if s.deletedAt != nil {
			r.MarkDeleted(*s.deletedAt)
		}
		if err := st.CreateJobSearchResult(ctx, r); err != nil {
			t.Fatalf("CreateJobSearchResult() error = %v", err)
		}
	}

	old := &models.LanguageDetection{Text: "hola", CreatedAt: now.Add(-72 * time.Hour)}
	old.MarkDeleted(now.Add(-30 * time.Hour))
	if err := st.CreateLanguageDetection(ctx, old); err != nil {
		t.Fatalf("CreateLanguageDetection() error = %v", err)
	}

	p := NewPurger(st, st, "@daily", 24*time.Hour)
	p.now = func() time.Time { return now }

	results, detections, err := p.PurgeOnce(ctx)
	if err != nil {
		t.Fatalf("PurgeOnce() error = %v", err)
	}
	if results != 1 || detections != 1 {
		t.Errorf("PurgeOnce() = (%d, %d), want (1, 1)", results, detections)
	}

	remaining, err := st.ListJobSearchResults(ctx, store.JobSearchFilter{Deleted: store.IncludeDeleted})
	if err != nil {
		t.Fatalf("ListJobSearchResults() error = %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("len(remaining) = %d, want 2", len(remaining))
	}
	for _, r := range remaining {
		if r.Query == "old" {
			t.Errorf("result %q should have been purged", r.Query)
		}
	}

	if _, err := st.GetLanguageDetection(ctx, old.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetLanguageDetection() error = %v, want ErrNotFound", err)
	}
}

func TestStart(t *testing.T) {
	st := testutil.BadgerStore(t)

	tests := []struct {
		name      string
		spec      string
		retention time.Duration
		wantErr   bool
	}{
		{"valid", "@every 1h", time.Hour, false},
		{"disabled retention", "@daily", 0, true},
		{"bad schedule", "every day", time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPurger(st, st, tt.spec, tt.retention)
			err := p.Start(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				p.Stop()
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
