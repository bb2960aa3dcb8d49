package dto

import (
	"time"

	"wavify/internal/app/model"
)

// TranscriptResponse is the body of POST /convert in transcript mode.
type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

// ListConversionsQuery represents query parameters for listing conversion records
type ListConversionsQuery struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ConversionResponse is one conversion record.
type ConversionResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ConvertedAt  time.Time `json:"converted_at"`
	Mode         string    `json:"mode"`
	Status       string    `json:"status"`
	FailedStage  string    `json:"failed_stage,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// ConversionListResponse is a page of conversion records, newest first.
type ConversionListResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	Count       int                  `json:"count"`
}

// NewConversionResponse converts a stored record.
func NewConversionResponse(rec model.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		ID:           rec.ID,
		Filename:     rec.Filename,
		ConvertedAt:  rec.ConvertedAt,
		Mode:         rec.Mode,
		Status:       rec.Status,
		FailedStage:  rec.FailedStage,
		ErrorMessage: rec.ErrorMessage,
		DurationMs:   rec.DurationMs,
	}
}
