package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"wavify/internal/app/converter"
	"wavify/internal/app/toolexec"
)

func stageErr(stage converter.Stage, kind error) error {
	return &converter.StageError{
		Stage: stage,
		Cause: &toolexec.Error{Kind: kind, Tool: "tool", Result: toolexec.Result{ExitCode: 1, Stderr: "secret /tmp/path"}},
	}
}

func TestFromPipelineError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
		wantStage  string
	}{
		{
			name:       "transcoder exits non-zero",
			err:        stageErr(converter.StageTranscode, toolexec.ErrToolFailed),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  TitleConversionFailed,
			wantStage:  "transcode",
		},
		{
			name:       "recognizer exits non-zero",
			err:        stageErr(converter.StageTranscribe, toolexec.ErrToolFailed),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  TitleTranscriptionFailed,
			wantStage:  "transcribe",
		},
		{
			name:       "transcoder missing",
			err:        stageErr(converter.StageTranscode, toolexec.ErrToolUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantTitle:  TitleConversionFailed,
			wantStage:  "transcode",
		},
		{
			name:       "recognizer timeout",
			err:        stageErr(converter.StageTranscribe, toolexec.ErrToolTimeout),
			wantStatus: http.StatusGatewayTimeout,
			wantTitle:  TitleTranscriptionFailed,
			wantStage:  "transcribe",
		},
		{
			name:       "client went away",
			err:        stageErr(converter.StageTranscode, toolexec.ErrToolCanceled),
			wantStatus: StatusClientClosedRequest,
			wantTitle:  TitleConversionFailed,
			wantStage:  "transcode",
		},
		{
			name: "missing artifact",
			err: &converter.StageError{
				Stage: converter.StageTranscode,
				Cause: fmt.Errorf("%w: %w", toolexec.ErrToolFailed, converter.ErrMissingArtifact),
			},
			wantStatus: http.StatusInternalServerError,
			wantTitle:  TitleConversionFailed,
			wantStage:  "transcode",
		},
		{
			name:       "workspace failure",
			err:        &converter.StageError{Stage: converter.StageTranscode, Cause: fmt.Errorf("create source file: %w", context.DeadlineExceeded)},
			wantStatus: http.StatusInternalServerError,
			wantTitle:  TitleConversionFailed,
			wantStage:  "transcode",
		},
		{
			name:       "not a stage error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  TitleInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromPipelineError(tt.err, "req-1")

			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, tt.wantStage, p.Stage)
			assert.Equal(t, "req-1", p.RequestID)
			assert.NotEmpty(t, p.Detail)
			assert.NotContains(t, p.Detail, "secret")
		})
	}
}

func TestIsValidation(t *testing.T) {
	err := &converter.StageError{
		Stage: converter.StageValidation,
		Cause: &converter.ValidationError{Kind: converter.ErrUnsupportedFormat, Message: "only accepted audio formats allowed: .mp3"},
	}

	msg, ok := IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, "only accepted audio formats allowed: .mp3", msg)

	_, ok = IsValidation(stageErr(converter.StageTranscode, toolexec.ErrToolFailed))
	assert.False(t, ok)
}

func TestAPIError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad", map[string]string{"limit": "is too large"}).HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, NewServiceUnavailableError("down").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("oops").HTTPStatus())
}
