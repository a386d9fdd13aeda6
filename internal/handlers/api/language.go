package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/langid"
	"hackhub/internal/models"
	"hackhub/internal/store"
	"hackhub/internal/validation"
)

// LanguageHandler exposes language detection and stored detections.
type LanguageHandler struct {
	lang *langid.Service
}

// NewLanguageHandler creates a new language detection handler.
func NewLanguageHandler(lang *langid.Service) *LanguageHandler {
	return &LanguageHandler{lang: lang}
}

func parseDetectionRequest(c fiber.Ctx) (models.LanguageDetectionRequest, error) {
	var req models.LanguageDetectionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, errors.New("invalid request body")
	}
	return req, validation.Struct(req)
}

// Detect identifies the language of a text and returns the upstream answer as is.
func (h *LanguageHandler) Detect(c fiber.Ctx) error {
	req, err := parseDetectionRequest(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	raw, err := h.lang.Detect(c.Context(), req.Text)
	if err != nil {
		return upstreamError(c, "detecting language", err, langid.ErrInvalidResponse)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// List returns stored detections, optionally filtered.
func (h *LanguageHandler) List(c fiber.Ctx) error {
	deleted, err := deletedFilter(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	minConfidence, err := queryFloat(c, "minConfidence")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	detections, err := h.lang.List(c.Context(), store.DetectionFilter{
		Deleted:       deleted,
		LanguageCode:  c.Query("language"),
		MinConfidence: minConfidence,
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch language detections")
	}
	return jsonOK(c, detections)
}

// ListDeleted returns only soft-deleted detections.
func (h *LanguageHandler) ListDeleted(c fiber.Ctx) error {
	detections, err := h.lang.List(c.Context(), store.DetectionFilter{Deleted: store.OnlyDeleted})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch deleted language detections")
	}
	return jsonOK(c, detections)
}

// Get returns a stored, non-deleted detection.
func (h *LanguageHandler) Get(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid language detection id")
	}

	d, err := h.lang.Get(c.Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	return jsonOK(c, d)
}

// Update re-detects the language of a new text for a stored detection.
func (h *LanguageHandler) Update(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid language detection id")
	}
	req, err := parseDetectionRequest(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	d, err := h.lang.Update(c.Context(), id, req.Text)
	switch {
	case err == nil:
		return jsonOK(c, d)
	case errors.Is(err, store.ErrNotFound):
		return h.storeError(c, err)
	case errors.Is(err, langid.ErrNoLanguageDetected):
		return jsonError(c, fiber.StatusBadGateway, err.Error())
	default:
		return upstreamError(c, "updating detection", err, langid.ErrInvalidResponse)
	}
}

// Delete soft-deletes a detection.
func (h *LanguageHandler) Delete(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid language detection id")
	}

	if err := h.lang.SoftDelete(c.Context(), id); err != nil {
		return h.storeError(c, err)
	}
	return noContent(c)
}

// PermanentDelete removes a detection for good, deleted or not.
func (h *LanguageHandler) PermanentDelete(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid language detection id")
	}

	if err := h.lang.PermanentDelete(c.Context(), id); err != nil {
		return h.storeError(c, err)
	}
	return noContent(c)
}

// Restore undoes a soft delete.
func (h *LanguageHandler) Restore(c fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid language detection id")
	}

	d, err := h.lang.Restore(c.Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	return jsonOK(c, d)
}

func (h *LanguageHandler) storeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "Language detection not found with id: "+c.Params("id"))
	case errors.Is(err, langid.ErrNotDeleted):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "an unexpected error occurred: "+err.Error())
	}
}
