package errors

import (
	"errors"
	"net/http"

	"wavify/internal/app/converter"
	"wavify/internal/app/toolexec"
)

// ProblemContentType is the media type of Problem bodies.
const ProblemContentType = "application/problem+json"

// StatusClientClosedRequest is reported when the client went away before the
// conversion finished.
const StatusClientClosedRequest = 499

// Problem titles, one per failing stage.
const (
	TitleConversionFailed    = "conversion failed"
	TitleTranscriptionFailed = "transcription failed"
	TitleInternal            = "internal error"
)

// Problem is a problem-details body for failed conversions.
type Problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	Stage     string `json:"stage,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (p *Problem) Error() string {
	return p.Title + ": " + p.Detail
}

// IsValidation reports whether err is a rejected upload. Its message is then
// safe to show to the client.
func IsValidation(err error) (string, bool) {
	var verr *converter.ValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}

// FromPipelineError maps a non-validation pipeline failure to a Problem.
// Tool output never reaches the detail; operators find it in the logs.
func FromPipelineError(err error, requestID string) *Problem {
	stage, _ := converter.StageOf(err)

	p := &Problem{
		Type:      "about:blank",
		Title:     TitleInternal,
		Status:    http.StatusInternalServerError,
		Detail:    "the upload could not be processed",
		Stage:     string(stage),
		RequestID: requestID,
	}

	role := "tool"
	switch stage {
	case converter.StageTranscode:
		p.Title = TitleConversionFailed
		role = "transcoder"
	case converter.StageTranscribe:
		p.Title = TitleTranscriptionFailed
		role = "speech recognizer"
	}

	switch {
	case errors.Is(err, toolexec.ErrToolCanceled):
		p.Status = StatusClientClosedRequest
		p.Detail = "request canceled by client"
	case errors.Is(err, toolexec.ErrToolTimeout):
		p.Status = http.StatusGatewayTimeout
		p.Detail = "the " + role + " did not finish in time"
	case errors.Is(err, toolexec.ErrToolUnavailable):
		p.Status = http.StatusServiceUnavailable
		p.Detail = "the " + role + " is not available"
	case errors.Is(err, toolexec.ErrToolFailed):
		p.Detail = "the " + role + " could not process the upload"
	}
	return p
}
