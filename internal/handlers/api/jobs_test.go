package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackhub/internal/models"
)

func TestJobSearchLifecycle(t *testing.T) {
	env := newTestEnv(t)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/search?query=go+developer&location=Lima&resultsPerPage=1", "")
	require.Equal(t, http.StatusOK, status, "body: %s", body)

	created := decode[models.JobSearchResult](t, body)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "go developer", created.Query)
	assert.Equal(t, 1, created.Page)
	assert.Equal(t, 1, created.ResultsPerPage)
	require.Len(t, created.Jobs, 1)
	assert.Equal(t, "job-1", created.Jobs[0].JobID)
	assert.Equal(t, []string{"Go"}, created.Jobs[0].RequiredSkills)
	assert.False(t, created.Deleted)

	path := "/api/v1/jobs/" + created.ID.String()

	status, body = do(t, env.app, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, decode[models.JobSearchResult](t, body).ID)

	status, _ = do(t, env.app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, status)

	status, body = do(t, env.app, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job search result not found with id: "+created.ID.String(), errorMessage(t, body))

	status, _ = do(t, env.app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, env.app, http.MethodGet, "/api/v1/jobs/all", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.JobSearchResult](t, body))

	status, body = do(t, env.app, http.MethodGet, "/api/v1/jobs/all?includeDeleted=true", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.JobSearchResult](t, body), 1)

	status, body = do(t, env.app, http.MethodGet, "/api/v1/jobs/deleted", "")
	require.Equal(t, http.StatusOK, status)
	deleted := decode[[]models.JobSearchResult](t, body)
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].Deleted)
	assert.NotNil(t, deleted[0].DeletedAt)

	status, body = do(t, env.app, http.MethodPatch, path+"/restore", "")
	require.Equal(t, http.StatusOK, status)
	restored := decode[models.JobSearchResult](t, body)
	assert.False(t, restored.Deleted)
	assert.Nil(t, restored.DeletedAt)

	status, body = do(t, env.app, http.MethodPatch, path+"/restore", "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorMessage(t, body), "not deleted")
}

func TestJobSearch_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		target  string
		wantMsg string
	}{
		{"missing query", "/api/v1/jobs/search?location=Lima", "query is required"},
		{"page not a number", "/api/v1/jobs/search?query=go&page=abc", "page must be an integer"},
		{"page below one", "/api/v1/jobs/search?query=go&page=-1", "page must be greater than or equal to 1"},
		{"results per page below one", "/api/v1/jobs/search?query=go&resultsPerPage=-3", "resultsPerPage must be greater than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, env.app, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantMsg, errorMessage(t, body))
		})
	}
}

func TestJobSearch_EmptyResultIsStored(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.respond("/search", emptyBody)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/search?query=cobol", "")
	require.Equal(t, http.StatusOK, status)

	result := decode[models.JobSearchResult](t, body)
	assert.Empty(t, result.Jobs)
	assert.Equal(t, "No jobs found matching the criteria", result.Metadata["message"])
	assert.EqualValues(t, 0, result.Metadata["totalResults"])

	status, body = do(t, env.app, http.MethodGet, "/api/v1/jobs/all?query=COBOL", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.JobSearchResult](t, body), 1)
}

func TestJobSearch_UpstreamError(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.fail(http.StatusTooManyRequests, `{"message":"quota exceeded"}`)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/search?query=go", "")
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, `error searching jobs: {"message":"quota exceeded"}`, errorMessage(t, body))
}

func TestJobSearch_InvalidUpstreamBody(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.respond("/search", `not json`)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/search?query=go", "")
	require.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, errorMessage(t, body), "error processing response")
}

func TestJobDetails(t *testing.T) {
	env := newTestEnv(t)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/details/job-1", "")
	require.Equal(t, http.StatusOK, status)
	details := decode[map[string]any](t, body)
	assert.Equal(t, "job-1", details["job_id"])
	assert.Equal(t, "Go Developer", details["job_title"])

	env.upstream.respond("/job-details", emptyBody)
	status, body = do(t, env.app, http.MethodGet, "/api/v1/jobs/details/missing", "")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job details not found for jobId: missing", errorMessage(t, body))
}

func TestJobUpdate(t *testing.T) {
	env := newTestEnv(t)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/search?query=go+developer", "")
	require.Equal(t, http.StatusOK, status)
	created := decode[models.JobSearchResult](t, body)
	path := "/api/v1/jobs/" + created.ID.String()

	status, body = do(t, env.app, http.MethodPut, path, `{"query":"rust developer","location":"Lima"}`)
	require.Equal(t, http.StatusOK, status, "body: %s", body)
	updated := decode[models.JobSearchResult](t, body)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "rust developer", updated.Query)
	assert.Equal(t, "Lima", updated.Location)
	assert.True(t, created.SearchedAt.Equal(updated.SearchedAt))

	status, body = do(t, env.app, http.MethodPut, path, `{"location":"Lima"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "query is required", errorMessage(t, body))

	status, _ = do(t, env.app, http.MethodPut, "/api/v1/jobs/"+uuid.NewString(), `{"query":"go"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestJobGet_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	status, body := do(t, env.app, http.MethodGet, "/api/v1/jobs/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid job search result id", errorMessage(t, body))
}
