package models

import (
	"time"

	"github.com/google/uuid"
)

// LanguageDetection is the persisted record of one language detection call.
type LanguageDetection struct {
	ID               uuid.UUID        `json:"id"`
	Text             string           `json:"text"`
	DetectedLanguage DetectedLanguage `json:"detectedLanguage"`
	Confidence       float64          `json:"confidence"`
	CreatedAt        time.Time        `json:"createdAt"`
	APIVersion       string           `json:"apiVersion,omitempty"`
	Lifecycle
}

// DetectedLanguage identifies a language by ISO code and display name.
type DetectedLanguage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguageDetectionRequest is the body of detect and update calls.
type LanguageDetectionRequest struct {
	Text string `json:"text" validate:"notblank,max=10000"`
}
