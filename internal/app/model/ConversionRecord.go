package model

import "time"

// Conversion modes.
const (
	ModeWaveform   = "waveform"
	ModeTranscript = "transcript"
)

// Conversion statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ConversionRecord is one append-only entry per conversion attempt.
type ConversionRecord struct {
	ID           string    `json:"id" db:"id"`
	Filename     string    `json:"filename" db:"filename"`
	ConvertedAt  time.Time `json:"converted_at" db:"converted_at"`
	Mode         string    `json:"mode" db:"mode"`
	Status       string    `json:"status" db:"status"`
	FailedStage  string    `json:"failed_stage,omitempty" db:"failed_stage"`
	ErrorMessage string    `json:"error_message,omitempty" db:"error_message"`
	DurationMs   int64     `json:"duration_ms" db:"duration_ms"`
}
