package types

import (
	"encoding/json"
	"time"
)

// Translation status constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// StatusRank orders statuses for forward-only transitions. Completed and
// failed are both terminal and share the highest rank.
func StatusRank(status string) int {
	switch status {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusCompleted, StatusFailed:
		return 2
	default:
		return -1
	}
}

// Translation is one tracked translation request. OriginalAudio and
// TranslatedAudio hold base64-encoded audio bytes; TranslatedAudio stays
// empty until the provider succeeds.
type Translation struct {
	ID              int             `json:"id"`
	OriginalAudio   string          `json:"originalAudio"`
	TranslatedAudio string          `json:"translatedAudio,omitempty"`
	SourceLanguage  string          `json:"sourceLanguage"`
	TargetLanguage  string          `json:"targetLanguage"`
	WaveformData    json.RawMessage `json:"waveformData,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// InsertTranslation carries the caller-supplied fields for a new record.
type InsertTranslation struct {
	OriginalAudio  string
	SourceLanguage string
	TargetLanguage string
	WaveformData   json.RawMessage
}

// TranslationPatch is a partial update; nil fields are left untouched.
type TranslationPatch struct {
	TranslatedAudio *string
	Status          *string
	WaveformData    json.RawMessage
}
