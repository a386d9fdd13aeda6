package models

import (
	"time"

	"github.com/google/uuid"
)

// Search request defaults and limits.
const (
	DefaultPage           = 1
	DefaultResultsPerPage = 10
	MaxPages              = 5
)

// JobSearchResult is the persisted record of one job search against the upstream API.
type JobSearchResult struct {
	ID             uuid.UUID      `json:"id"`
	Query          string         `json:"query"`
	Location       string         `json:"location"`
	Page           int            `json:"page"`
	ResultsPerPage int            `json:"resultsPerPage"`
	Jobs           []Job          `json:"jobs"`
	SearchedAt     time.Time      `json:"searchedAt"`
	Metadata       map[string]any `json:"metadata"`
	Lifecycle
}

// Job is a single job listing shaped from the upstream response.
type Job struct {
	JobID          string         `json:"jobId"`
	Title          string         `json:"title"`
	CompanyName    string         `json:"companyName"`
	Location       string         `json:"location"`
	JobType        string         `json:"jobType"`
	Salary         string         `json:"salary,omitempty"`
	Description    string         `json:"description"`
	ApplyLink      string         `json:"applyLink"`
	PostedAt       *time.Time     `json:"postedAt"`
	RequiredSkills []string       `json:"requiredSkills"`
	AdditionalInfo map[string]any `json:"additionalInfo,omitempty"`
}

// JobSearchRequest holds the parameters of a job search.
type JobSearchRequest struct {
	Query          string `json:"query" validate:"required,max=500"`
	Location       string `json:"location" validate:"max=200"`
	Page           int    `json:"page" validate:"gte=1"`
	ResultsPerPage int    `json:"resultsPerPage" validate:"gte=1"`
}

// ApplyDefaults fills in the page and page size when they were not provided.
func (r *JobSearchRequest) ApplyDefaults() {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.ResultsPerPage == 0 {
		r.ResultsPerPage = DefaultResultsPerPage
	}
}

// NumPages is the number of upstream pages requested; the upstream caps it at MaxPages.
func (r *JobSearchRequest) NumPages() int {
	return min(r.ResultsPerPage, MaxPages)
}

// SameSearch reports whether the request would run the same upstream search
// that produced result.
func (r *JobSearchRequest) SameSearch(result *JobSearchResult) bool {
	return r.Query == result.Query &&
		r.Location == result.Location &&
		r.Page == result.Page &&
		r.NumPages() == result.ResultsPerPage
}
