package jsearch

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hackhub/internal/models"
)

// SearchResponse is the JSearch /search and /job-details response body.
type SearchResponse struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Parameters *SearchParameters `json:"parameters"`
	Data       []JobDetails      `json:"data"`
}

// SearchParameters echoes the parameters the upstream actually used.
type SearchParameters struct {
	Query      string `json:"query"`
	Page       int    `json:"page"`
	NumPages   int    `json:"num_pages"`
	DatePosted string `json:"date_posted"`
	Country    string `json:"country"`
	Language   string `json:"language"`
}

// JobDetails is one upstream job listing, with upstream field names.
type JobDetails struct {
	JobID                  string         `json:"job_id"`
	JobTitle               string         `json:"job_title"`
	EmployerName           string         `json:"employer_name"`
	EmployerLogo           string         `json:"employer_logo"`
	EmployerWebsite        string         `json:"employer_website"`
	JobPublisher           string         `json:"job_publisher"`
	JobEmploymentType      string         `json:"job_employment_type"`
	JobEmploymentTypes     []string       `json:"job_employment_types"`
	JobApplyLink           string         `json:"job_apply_link"`
	JobApplyIsDirect       bool           `json:"job_apply_is_direct"`
	ApplyOptions           []ApplyOption  `json:"apply_options"`
	JobDescription         string         `json:"job_description"`
	JobIsRemote            bool           `json:"job_is_remote"`
	JobPostedAt            string         `json:"job_posted_at"`
	JobPostedAtTimestamp   *int64         `json:"job_posted_at_timestamp"`
	JobPostedAtDatetimeUTC string         `json:"job_posted_at_datetime_utc"`
	JobLocation            string         `json:"job_location"`
	JobCity                string         `json:"job_city"`
	JobState               string         `json:"job_state"`
	JobCountry             string         `json:"job_country"`
	JobLatitude            *float64       `json:"job_latitude"`
	JobLongitude           *float64       `json:"job_longitude"`
	JobBenefits            []string       `json:"job_benefits"`
	JobGoogleLink          string         `json:"job_google_link"`
	JobSalary              string         `json:"job_salary"`
	JobMinSalary           *float64       `json:"job_min_salary"`
	JobMaxSalary           *float64       `json:"job_max_salary"`
	JobSalaryPeriod        string         `json:"job_salary_period"`
	JobHighlights          *JobHighlights `json:"job_highlights"`
	JobOnetSOC             string         `json:"job_onet_soc"`
	JobOnetJobZone         string         `json:"job_onet_job_zone"`
}

// ApplyOption is an alternative application link.
type ApplyOption struct {
	Publisher string `json:"publisher"`
	ApplyLink string `json:"apply_link"`
	IsDirect  bool   `json:"is_direct"`
}

// JobHighlights groups the bullet lists extracted by the upstream.
type JobHighlights struct {
	Qualifications   []string `json:"Qualifications"`
	Benefits         []string `json:"Benefits"`
	Responsibilities []string `json:"Responsibilities"`
}

// DecodeSearch parses a raw upstream body.
func DecodeSearch(body []byte) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// toJob shapes an upstream listing into the stored representation.
func (d *JobDetails) toJob() models.Job {
	job := models.Job{
		JobID:          d.JobID,
		Title:          d.JobTitle,
		CompanyName:    d.EmployerName,
		Location:       d.JobLocation,
		JobType:        d.JobEmploymentType,
		Salary:         d.salary(),
		Description:    d.JobDescription,
		ApplyLink:      d.JobApplyLink,
		PostedAt:       parsePostedAt(d.JobPostedAtDatetimeUTC),
		AdditionalInfo: d.additionalInfo(),
	}
	if d.JobHighlights != nil {
		job.RequiredSkills = d.JobHighlights.Qualifications
	}
	return job
}

func (d *JobDetails) salary() string {
	if d.JobSalary != "" {
		return d.JobSalary
	}
	if d.JobMinSalary == nil && d.JobMaxSalary == nil {
		return ""
	}

	var parts []string
	if d.JobMinSalary != nil {
		parts = append(parts, formatAmount(*d.JobMinSalary))
	}
	if d.JobMaxSalary != nil {
		parts = append(parts, formatAmount(*d.JobMaxSalary))
	}
	s := strings.Join(parts, " - ")
	if d.JobSalaryPeriod != "" {
		s += " " + d.JobSalaryPeriod
	}
	return s
}

func (d *JobDetails) additionalInfo() map[string]any {
	info := map[string]any{}
	set := func(key, value string) {
		if value != "" {
			info[key] = value
		}
	}

	set("publisher", d.JobPublisher)
	set("employerLogo", d.EmployerLogo)
	set("employerWebsite", d.EmployerWebsite)
	set("city", d.JobCity)
	set("state", d.JobState)
	set("country", d.JobCountry)
	set("googleLink", d.JobGoogleLink)
	if d.JobIsRemote {
		info["isRemote"] = true
	}

	benefits := d.JobBenefits
	if len(benefits) == 0 && d.JobHighlights != nil {
		benefits = d.JobHighlights.Benefits
	}
	if len(benefits) > 0 {
		info["benefits"] = benefits
	}

	if len(info) == 0 {
		return nil
	}
	return info
}

func parsePostedAt(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		slog.Warn("failed to parse job posting date", "value", s, "error", err)
		return nil
	}
	t = t.UTC()
	return &t
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
