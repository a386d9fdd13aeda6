// Package langid detects text language through the Language Identify API and
// manages the persisted detections.
package langid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hackhub/internal/models"
	"hackhub/internal/rapidapi"
	"hackhub/internal/store"
)

var (
	ErrNotDeleted         = errors.New("language detection is not deleted and cannot be restored")
	ErrNoLanguageDetected = errors.New("invalid response from LanguageIdentify API")
	// ErrInvalidResponse wraps upstream bodies that could not be decoded.
	ErrInvalidResponse = errors.New("error processing response")
)

const unknownLanguage = "Unknown"

type identifyResponse struct {
	LanguageCodes []struct {
		Code       string  `json:"code"`
		Confidence float64 `json:"confidence"`
	} `json:"languageCodes"`
}

// Service detects languages and manages stored detections.
type Service struct {
	client     *rapidapi.Client
	detections store.LanguageDetections
	names      map[string]string
	apiVersion string
	now        func() time.Time
}

// NewService creates a language detection service. names maps lower-case
// ISO 639-1 codes to display names.
func NewService(client *rapidapi.Client, detections store.LanguageDetections, names map[string]string, apiVersion string) *Service {
	return &Service{
		client:     client,
		detections: detections,
		names:      names,
		apiVersion: apiVersion,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// LanguageName returns the display name for code, or "Unknown".
func (s *Service) LanguageName(code string) string {
	if name, ok := s.names[strings.ToLower(code)]; ok {
		return name
	}
	return unknownLanguage
}

// Detect identifies the language of text. When the upstream reports at least
// one language the top one is persisted. The raw upstream JSON is returned
// either way.
func (s *Service) Detect(ctx context.Context, text string) (json.RawMessage, error) {
	slog.Info("detecting language", "text_length", len(text))

	body, resp, err := s.identify(ctx, text)
	if err != nil {
		return nil, err
	}

	if len(resp.LanguageCodes) == 0 {
		slog.Warn("no language codes in upstream response")
		return body, nil
	}

	top := resp.LanguageCodes[0]
	now := s.now()
	d := &models.LanguageDetection{
		Text: text,
		DetectedLanguage: models.DetectedLanguage{
			Code: top.Code,
			Name: s.LanguageName(top.Code),
		},
		Confidence: top.Confidence,
		CreatedAt:  now,
		APIVersion: s.apiVersion,
		Lifecycle:  models.Lifecycle{UpdatedAt: now},
	}
	if err := s.detections.CreateLanguageDetection(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save language detection: %w", err)
	}
	slog.Info("language detection saved", "id", d.ID, "language", top.Code, "confidence", top.Confidence)

	return body, nil
}

func (s *Service) identify(ctx context.Context, text string) (json.RawMessage, *identifyResponse, error) {
	body, err := s.client.PostJSON(ctx, "/languageIdentify", map[string]string{"text": text})
	if err != nil {
		return nil, nil, err
	}

	var resp identifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return json.RawMessage(body), &resp, nil
}

// Get returns a non-deleted detection.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.LanguageDetection, error) {
	d, err := s.detections.GetLanguageDetection(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Deleted {
		return nil, store.ErrNotFound
	}
	return d, nil
}

// List returns detections matching f.
func (s *Service) List(ctx context.Context, f store.DetectionFilter) ([]models.LanguageDetection, error) {
	return s.detections.ListLanguageDetections(ctx, f)
}

// Update re-detects the language of a new text for an existing detection.
func (s *Service) Update(ctx context.Context, id uuid.UUID, text string) (*models.LanguageDetection, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slog.Info("updating language detection", "id", id)
	_, resp, err := s.identify(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(resp.LanguageCodes) == 0 {
		return nil, ErrNoLanguageDetected
	}

	top := resp.LanguageCodes[0]
	existing.Text = text
	existing.Confidence = top.Confidence
	existing.DetectedLanguage = models.DetectedLanguage{Code: top.Code, Name: s.LanguageName(top.Code)}
	existing.APIVersion = s.apiVersion
	existing.Touch(s.now())

	if err := s.detections.UpdateLanguageDetection(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SoftDelete marks a non-deleted detection as deleted.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	slog.Info("soft-deleting language detection", "id", id)
	d.MarkDeleted(s.now())
	return s.detections.UpdateLanguageDetection(ctx, d)
}

// Restore clears the deleted flag of a soft-deleted detection.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*models.LanguageDetection, error) {
	d, err := s.detections.GetLanguageDetection(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.Deleted {
		return nil, ErrNotDeleted
	}
	slog.Info("restoring language detection", "id", id)
	d.Restore(s.now())
	if err := s.detections.UpdateLanguageDetection(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// PermanentDelete removes a detection whether or not it was soft-deleted.
func (s *Service) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	slog.Info("permanently deleting language detection", "id", id)
	return s.detections.DeleteLanguageDetection(ctx, id)
}
