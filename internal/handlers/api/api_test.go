package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"hackhub/internal/badger"
	"hackhub/internal/config"
	"hackhub/internal/jsearch"
	"hackhub/internal/langid"
	"hackhub/internal/rapidapi"
	"hackhub/internal/testutil"
)

const (
	searchBody = `{
  "status": "OK",
  "request_id": "req-1",
  "parameters": {"query": "go developer", "page": 1, "num_pages": 1, "country": "pe"},
  "data": [
    {
      "job_id": "job-1",
      "job_title": "Go Developer",
      "employer_name": "Acme",
      "job_employment_type": "FULLTIME",
      "job_posted_at_datetime_utc": "2025-01-15T10:30:00.000Z",
      "job_highlights": {"Qualifications": ["Go"]}
    }
  ]
}`
	emptyBody    = `{"status": "OK", "request_id": "req-2", "data": []}`
	identifyBody = `{"languageCodes": [{"code": "es", "confidence": 0.97}, {"code": "pt", "confidence": 0.02}]}`
)

// fakeRapidAPI answers both upstream APIs by path.
type fakeRapidAPI struct {
	mu       sync.Mutex
	status   int
	search   string
	details  string
	identify string
}

func (f *fakeRapidAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	status := f.status
	var body string
	switch r.URL.Path {
	case "/search":
		body = f.search
	case "/job-details":
		body = f.details
	case "/languageIdentify":
		body = f.identify
	}
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func (f *fakeRapidAPI) respond(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch path {
	case "/search":
		f.search = body
	case "/job-details":
		f.details = body
	case "/languageIdentify":
		f.identify = body
	}
}

func (f *fakeRapidAPI) fail(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.search, f.details, f.identify = body, body, body
}

type testEnv struct {
	app      *fiber.App
	upstream *fakeRapidAPI
	store    *badger.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	up := &fakeRapidAPI{search: searchBody, details: searchBody, identify: identifyBody}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	st := testutil.BadgerStore(t)

	lookups := config.DefaultLookups()
	jobs := jsearch.NewService(
		rapidapi.New(rapidapi.Options{Name: "jsearch", BaseURL: srv.URL, APIKey: "0123456789abcdef", APIHost: "jsearch.example"}),
		st,
		jsearch.NewCountryResolver(lookups),
	)
	lang := langid.NewService(
		rapidapi.New(rapidapi.Options{Name: "language_identify", BaseURL: srv.URL, APIKey: "k", APIHost: "lang.example"}),
		st,
		lookups.Languages,
		"v1",
	)

	app := fiber.New()
	jh := NewJobHandler(jobs)
	v1 := app.Group("/api/v1")
	v1.Get("/jobs/search", jh.Search)
	v1.Get("/jobs/details/:jobId", jh.Details)
	v1.Get("/jobs/all", jh.List)
	v1.Get("/jobs/deleted", jh.ListDeleted)
	v1.Get("/jobs/:id", jh.Get)
	v1.Put("/jobs/:id", jh.Update)
	v1.Delete("/jobs/:id", jh.Delete)
	v1.Patch("/jobs/:id/restore", jh.Restore)

	lh := NewLanguageHandler(lang)
	v1.Post("/language/detect", lh.Detect)
	v1.Get("/language/detections", lh.List)
	v1.Get("/language/detections/deleted", lh.ListDeleted)
	v1.Get("/language/detections/:id", lh.Get)
	v1.Put("/language/detections/:id", lh.Update)
	v1.Delete("/language/detections/:id/permanent", lh.PermanentDelete)
	v1.Delete("/language/detections/:id", lh.Delete)
	v1.Patch("/language/detections/:id/restore", lh.Restore)

	dh := NewDiagnosticsHandler(jobs, "badger", nil)
	v1.Get("/test/jsearch-config", dh.JSearchConfig)
	v1.Get("/test/jsearch-connection", dh.JSearchConnection)
	v1.Get("/test/jsearch-raw-response", dh.JSearchRawResponse)
	v1.Get("/test/jsearch-test-parsing", dh.JSearchTestParsing)
	v1.Get("/test/jsearch-test-countries", dh.JSearchTestCountries)

	return &testEnv{app: app, upstream: up, store: st}
}

// do sends a request and returns the status and body.
func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// errorMessage decodes the error envelope.
func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var env struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	require.Equal(t, "error", env.Status)
	return env.Error
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}
