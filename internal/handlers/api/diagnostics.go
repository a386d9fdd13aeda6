package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/jsearch"
	"hackhub/internal/store"
)

const (
	diagnosticsQuery = "developer jobs in chicago"
	connectionQuery  = "test"
)

var sampleLocations = []string{
	"Lima, Peru",
	"Buenos Aires",
	"Ciudad de Mexico",
	"Madrid, Spain",
	"Toronto, Canada",
	"Chicago",
	"",
}

// DiagnosticsHandler serves the troubleshooting endpoints under /api/v1/test.
type DiagnosticsHandler struct {
	jobs    *jsearch.Service
	backend string
	counter store.RecordCounter
}

// NewDiagnosticsHandler creates a diagnostics handler. counter may be nil.
func NewDiagnosticsHandler(jobs *jsearch.Service, backend string, counter store.RecordCounter) *DiagnosticsHandler {
	return &DiagnosticsHandler{jobs: jobs, backend: backend, counter: counter}
}

// JSearchConfig shows the upstream configuration with the API key masked.
func (h *DiagnosticsHandler) JSearchConfig(c fiber.Ctx) error {
	client := h.jobs.Client()
	return c.SendString(fmt.Sprintf("JSearch Config - Base URL: %s, API Key: %s, API Host: %s",
		client.BaseURL(), client.MaskedKey(), client.APIHost()))
}

// JSearchConnection runs a minimal upstream search.
func (h *DiagnosticsHandler) JSearchConnection(c fiber.Ctx) error {
	body, err := h.jobs.RawSearch(c.Context(), connectionQuery)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("JSearch API connection failed: " + err.Error())
	}
	return c.SendString(fmt.Sprintf("JSearch API connection successful. Response length: %d", len(body)))
}

// JSearchRawResponse returns an upstream search body untouched.
func (h *DiagnosticsHandler) JSearchRawResponse(c fiber.Ctx) error {
	body, err := h.jobs.RawSearch(c.Context(), diagnosticsQuery)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("JSearch API raw response failed: " + err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// JSearchTestParsing checks that an upstream search body decodes.
func (h *DiagnosticsHandler) JSearchTestParsing(c fiber.Ctx) error {
	body, err := h.jobs.RawSearch(c.Context(), diagnosticsQuery)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Request failed: " + err.Error())
	}
	resp, err := jsearch.DecodeSearch(body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("JSON parsing failed: " + err.Error())
	}
	return c.SendString(fmt.Sprintf("JSON parsing successful! Status: %s, Jobs found: %d", resp.Status, len(resp.Data)))
}

// StorageInfo reports the storage backend and record counts.
func (h *DiagnosticsHandler) StorageInfo(c fiber.Ctx) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Storage backend: %s\n", h.backend)
	fmt.Fprintf(&b, "Collections: %s, %s\n", store.CollectionJobSearchResults, store.CollectionLanguageDetections)

	if h.counter != nil {
		counts, err := h.counter.CountRecords(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Storage error: " + err.Error())
		}
		for _, rc := range counts {
			fmt.Fprintf(&b, "%s (%s): %d\n", rc.Collection, rc.State, rc.Count)
		}
	}
	return c.SendString(b.String())
}

// LanguageTest describes how to exercise the language endpoints.
func (h *DiagnosticsHandler) LanguageTest(c fiber.Ctx) error {
	return c.SendString(`Language Identify endpoints:
POST /api/v1/language/detect with body {"text": "Hola, como estas?"}
GET /api/v1/language/detections?language=es&minConfidence=0.5
GET /api/v1/language/detections/deleted`)
}

// JSearchTestCountries shows the country inferred for sample locations.
func (h *DiagnosticsHandler) JSearchTestCountries(c fiber.Ctx) error {
	var b strings.Builder
	b.WriteString("Country detection for job searches:\n")
	for _, loc := range sampleLocations {
		label := loc
		if label == "" {
			label = "(no location)"
		}
		fmt.Fprintf(&b, "%s -> %s\n", label, h.jobs.Country(loc))
	}
	b.WriteString("Try: GET /api/v1/jobs/search?query=developer&location=Lima")
	return c.SendString(b.String())
}
