package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/jsearch"
	"hackhub/internal/models"
	"hackhub/internal/store"
	"hackhub/internal/validation"
)

// JobHandler exposes job searches and their stored results.
type JobHandler struct {
	jobs *jsearch.Service
}

// NewJobHandler creates a new job search handler.
func NewJobHandler(jobs *jsearch.Service) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Search runs a job search and returns the stored result.
func (h *JobHandler) Search(c fiber.Ctx) error {
	page, err := queryInt(c, "page", models.DefaultPage)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	perPage, err := queryInt(c, "resultsPerPage", models.DefaultResultsPerPage)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req := models.JobSearchRequest{
		Query:          c.Query("query"),
		Location:       c.Query("location"),
		Page:           page,
		ResultsPerPage: perPage,
	}
	if err := validation.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.jobs.SearchJobs(c.Context(), req)
	if err != nil {
		return upstreamError(c, "searching jobs", err, jsearch.ErrInvalidResponse)
	}
	return jsonOK(c, result)
}

// Details returns one job straight from the upstream.
func (h *JobHandler) Details(c fiber.Ctx) error {
	jobID := c.Params("jobId")
	details, err := h.jobs.GetJobDetails(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, jsearch.ErrJobDetailsNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Job details not found for jobId: "+jobID)
		}
		return upstreamError(c, "getting job details", err, jsearch.ErrInvalidResponse)
	}
	return jsonOK(c, details)
}

// List returns stored results, optionally including deleted ones.
func (h *JobHandler) List(c fiber.Ctx) error {
	deleted, err := deletedFilter(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	since, err := queryTime(c, "since")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	results, err := h.jobs.List(c.Context(), store.JobSearchFilter{
		Deleted:  deleted,
		Query:    c.Query("query"),
		Location: c.Query("location"),
		Since:    since,
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch job search results")
	}
	return jsonOK(c, results)
}

// ListDeleted returns only soft-deleted results.
func (h *JobHandler) ListDeleted(c fiber.Ctx) error {
	results, err := h.jobs.List(c.Context(), store.JobSearchFilter{Deleted: store.OnlyDeleted})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch deleted job search results")
	}
	return jsonOK(c, results)
}

// Get returns a stored, non-deleted result.
func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job search result id")
	}

	result, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	return jsonOK(c, result)
}

// Update re-runs a stored search with new parameters.
func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job search result id")
	}

	var req models.JobSearchRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.ApplyDefaults()
	if err := validation.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.jobs.Update(c.Context(), id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return h.storeError(c, err)
		}
		return upstreamError(c, "searching jobs", err, jsearch.ErrInvalidResponse)
	}
	return jsonOK(c, result)
}

// Delete soft-deletes a stored result.
func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job search result id")
	}

	if err := h.jobs.SoftDelete(c.Context(), id); err != nil {
		return h.storeError(c, err)
	}
	return noContent(c)
}

// Restore undoes a soft delete.
func (h *JobHandler) Restore(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job search result id")
	}

	result, err := h.jobs.Restore(c.Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	return jsonOK(c, result)
}

func (h *JobHandler) storeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "Job search result not found with id: "+c.Params("id"))
	case errors.Is(err, jsearch.ErrNotDeleted):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "an unexpected error occurred: "+err.Error())
	}
}
