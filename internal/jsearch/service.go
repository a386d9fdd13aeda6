// Package jsearch searches jobs through the JSearch API and manages the
// persisted search results.
package jsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"hackhub/internal/models"
	"hackhub/internal/rapidapi"
	"hackhub/internal/store"
)

var (
	ErrNotDeleted         = errors.New("job search result is not deleted and cannot be restored")
	ErrJobDetailsNotFound = errors.New("job details not found")
	// ErrInvalidResponse wraps upstream bodies that could not be decoded.
	ErrInvalidResponse = errors.New("error processing response")
)

const noJobsMessage = "No jobs found matching the criteria"

// Service runs job searches and manages their stored results.
type Service struct {
	client    *rapidapi.Client
	results   store.JobSearchResults
	countries *CountryResolver
	now       func() time.Time
}

// NewService creates a job search service.
func NewService(client *rapidapi.Client, results store.JobSearchResults, countries *CountryResolver) *Service {
	return &Service{
		client:    client,
		results:   results,
		countries: countries,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Client returns the upstream client, used by the diagnostics endpoints.
func (s *Service) Client() *rapidapi.Client {
	return s.client
}

// SearchJobs runs req against the upstream and persists the shaped result.
// An empty upstream result is persisted too.
func (s *Service) SearchJobs(ctx context.Context, req models.JobSearchRequest) (*models.JobSearchResult, error) {
	result, err := s.search(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.results.CreateJobSearchResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save job search result: %w", err)
	}
	slog.Info("job search saved", "id", result.ID, "jobs", len(result.Jobs))
	return result, nil
}

// search calls the upstream and shapes the response without persisting it.
func (s *Service) search(ctx context.Context, req models.JobSearchRequest) (*models.JobSearchResult, error) {
	country := s.countries.Resolve(req.Location)
	numPages := req.NumPages()
	slog.Info("searching jobs", "query", req.Query, "location", req.Location, "country", country)

	body, err := s.client.Get(ctx, "/search", searchParams(req.Query, req.Page, numPages, country))
	if err != nil {
		return nil, err
	}

	resp, err := DecodeSearch(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	now := s.now()
	result := &models.JobSearchResult{
		Query:          req.Query,
		Location:       req.Location,
		Page:           req.Page,
		ResultsPerPage: numPages,
		Jobs:           []models.Job{},
		SearchedAt:     now,
		Lifecycle:      models.Lifecycle{UpdatedAt: now},
	}

	if len(resp.Data) == 0 {
		slog.Info("no jobs found", "query", req.Query, "location", req.Location, "country", country)
		result.Metadata = map[string]any{
			"status":        resp.Status,
			"requestId":     resp.RequestID,
			"searchQuery":   req.Query,
			"searchPage":    req.Page,
			"searchCountry": country,
			"totalResults":  0,
			"message":       noJobsMessage,
		}
		return result, nil
	}

	for i := range resp.Data {
		result.Jobs = append(result.Jobs, resp.Data[i].toJob())
	}

	meta := map[string]any{
		"status":            resp.Status,
		"requestId":         resp.RequestID,
		"totalResults":      len(resp.Data),
		"responseSizeBytes": len(body),
	}
	if p := resp.Parameters; p != nil {
		meta["searchQuery"] = p.Query
		meta["searchPage"] = p.Page
		meta["searchCountry"] = p.Country
	}
	result.Metadata = meta

	return result, nil
}

// GetJobDetails fetches one job from the upstream, with upstream field names.
func (s *Service) GetJobDetails(ctx context.Context, jobID string) (*JobDetails, error) {
	slog.Info("getting job details", "job_id", jobID)

	params := url.Values{}
	params.Set("job_id", jobID)
	params.Set("country", "us")

	body, err := s.client.Get(ctx, "/job-details", params)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeSearch(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrJobDetailsNotFound
	}
	return &resp.Data[0], nil
}

// Get returns a non-deleted result.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.JobSearchResult, error) {
	r, err := s.results.GetJobSearchResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Deleted {
		return nil, store.ErrNotFound
	}
	return r, nil
}

// List returns results matching f.
func (s *Service) List(ctx context.Context, f store.JobSearchFilter) ([]models.JobSearchResult, error) {
	return s.results.ListJobSearchResults(ctx, f)
}

// Update re-runs the search when its parameters changed, keeping the ID and
// its first search time. Otherwise it only refreshes updatedAt.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.JobSearchRequest) (*models.JobSearchResult, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SameSearch(existing) {
		slog.Info("search parameters unchanged, touching result", "id", id)
		existing.Touch(s.now())
		if err := s.results.UpdateJobSearchResult(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	slog.Info("search parameters changed, running new search", "id", id)
	fresh, err := s.search(ctx, req)
	if err != nil {
		return nil, err
	}
	fresh.ID = existing.ID
	fresh.SearchedAt = existing.SearchedAt
	if err := s.results.UpdateJobSearchResult(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// SoftDelete marks a non-deleted result as deleted.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	slog.Info("soft-deleting job search result", "id", id)
	r.MarkDeleted(s.now())
	return s.results.UpdateJobSearchResult(ctx, r)
}

// Restore clears the deleted flag of a soft-deleted result.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*models.JobSearchResult, error) {
	r, err := s.results.GetJobSearchResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Deleted {
		return nil, ErrNotDeleted
	}
	slog.Info("restoring job search result", "id", id)
	r.Restore(s.now())
	if err := s.results.UpdateJobSearchResult(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// RawSearch runs a one-page search in the default country and returns the
// upstream body untouched.
func (s *Service) RawSearch(ctx context.Context, query string) ([]byte, error) {
	return s.client.Get(ctx, "/search", searchParams(query, 1, 1, s.countries.fallback))
}

// Country returns the country code a search for location would use.
func (s *Service) Country(location string) string {
	return s.countries.Resolve(location)
}

func searchParams(query string, page, numPages int, country string) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", strconv.Itoa(numPages))
	params.Set("country", country)
	params.Set("date_posted", "all")
	return params
}
