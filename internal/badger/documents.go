package badger

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"hackhub/internal/models"
	"hackhub/internal/store"
)

// CreateJobSearchResult inserts a job search result, assigning an ID when unset.
func (s *Store) CreateJobSearchResult(_ context.Context, r *models.JobSearchResult) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return s.store.Insert(r.ID.String(), r)
}

// GetJobSearchResult retrieves a job search result by ID, deleted or not.
func (s *Store) GetJobSearchResult(_ context.Context, id uuid.UUID) (*models.JobSearchResult, error) {
	var r models.JobSearchResult
	if err := s.store.Get(id.String(), &r); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

// UpdateJobSearchResult overwrites an existing result.
func (s *Store) UpdateJobSearchResult(_ context.Context, r *models.JobSearchResult) error {
	return mapErr(s.store.Update(r.ID.String(), r))
}

// ListJobSearchResults returns results matching f, newest search first.
func (s *Store) ListJobSearchResults(_ context.Context, f store.JobSearchFilter) ([]models.JobSearchResult, error) {
	var all []models.JobSearchResult
	if err := s.store.Find(&all, nil); err != nil {
		return nil, err
	}

	results := []models.JobSearchResult{}
	for i := range all {
		if f.Match(&all[i]) {
			results = append(results, all[i])
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SearchedAt.After(results[j].SearchedAt)
	})
	return results, nil
}

// PurgeDeletedJobSearchResults hard-deletes results soft-deleted before the cutoff.
func (s *Store) PurgeDeletedJobSearchResults(_ context.Context, before time.Time) (int64, error) {
	var all []models.JobSearchResult
	if err := s.store.Find(&all, nil); err != nil {
		return 0, err
	}

	var n int64
	for i := range all {
		if !all[i].DeletedBefore(before) {
			continue
		}
		if err := s.store.Delete(all[i].ID.String(), &models.JobSearchResult{}); err != nil {
			return n, mapErr(err)
		}
		n++
	}
	return n, nil
}

// CreateLanguageDetection inserts a detection, assigning an ID when unset.
func (s *Store) CreateLanguageDetection(_ context.Context, d *models.LanguageDetection) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return s.store.Insert(d.ID.String(), d)
}

// GetLanguageDetection retrieves a detection by ID, deleted or not.
func (s *Store) GetLanguageDetection(_ context.Context, id uuid.UUID) (*models.LanguageDetection, error) {
	var d models.LanguageDetection
	if err := s.store.Get(id.String(), &d); err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

// UpdateLanguageDetection overwrites an existing detection.
func (s *Store) UpdateLanguageDetection(_ context.Context, d *models.LanguageDetection) error {
	return mapErr(s.store.Update(d.ID.String(), d))
}

// DeleteLanguageDetection permanently removes a detection.
func (s *Store) DeleteLanguageDetection(_ context.Context, id uuid.UUID) error {
	return mapErr(s.store.Delete(id.String(), &models.LanguageDetection{}))
}

// ListLanguageDetections returns detections matching f, newest first.
func (s *Store) ListLanguageDetections(_ context.Context, f store.DetectionFilter) ([]models.LanguageDetection, error) {
	var all []models.LanguageDetection
	if err := s.store.Find(&all, nil); err != nil {
		return nil, err
	}

	detections := []models.LanguageDetection{}
	for i := range all {
		if f.Match(&all[i]) {
			detections = append(detections, all[i])
		}
	}
	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].CreatedAt.After(detections[j].CreatedAt)
	})
	return detections, nil
}

// PurgeDeletedLanguageDetections hard-deletes detections soft-deleted before the cutoff.
func (s *Store) PurgeDeletedLanguageDetections(_ context.Context, before time.Time) (int64, error) {
	var all []models.LanguageDetection
	if err := s.store.Find(&all, nil); err != nil {
		return 0, err
	}

	var n int64
	for i := range all {
		if !all[i].DeletedBefore(before) {
			continue
		}
		if err := s.store.Delete(all[i].ID.String(), &models.LanguageDetection{}); err != nil {
			return n, mapErr(err)
		}
		n++
	}
	return n, nil
}

// CountDocuments counts job search results and language detections by state.
func (s *Store) CountDocuments(_ context.Context) ([]store.RecordCount, error) {
	var results []models.JobSearchResult
	if err := s.store.Find(&results, nil); err != nil {
		return nil, err
	}
	var detections []models.LanguageDetection
	if err := s.store.Find(&detections, nil); err != nil {
		return nil, err
	}

	counts := map[string]map[string]int64{
		store.CollectionJobSearchResults:   {},
		store.CollectionLanguageDetections: {},
	}
	for i := range results {
		counts[store.CollectionJobSearchResults][store.State(results[i].Deleted)]++
	}
	for i := range detections {
		counts[store.CollectionLanguageDetections][store.State(detections[i].Deleted)]++
	}

	var out []store.RecordCount
	for _, c := range []string{store.CollectionJobSearchResults, store.CollectionLanguageDetections} {
		for _, state := range []string{store.State(false), store.State(true)} {
			out = append(out, store.RecordCount{Collection: c, State: state, Count: counts[c][state]})
		}
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, badgerhold.ErrNotFound) {
		return store.ErrNotFound
	}
	return err
}
