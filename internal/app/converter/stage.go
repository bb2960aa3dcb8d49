package converter

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Stage names the pipeline step a failure belongs to.
type Stage string

const (
	StageValidation  Stage = "validation"
	StageTranscode   Stage = "transcode"
	StageTranscribe  Stage = "transcribe"
	StagePersistence Stage = "persistence"
)

// State is a pipeline run's position in
// Received → Validated → Transcoded → Transcribed → Persisted → Completed.
type State string

const (
	StateReceived    State = "received"
	StateValidated   State = "validated"
	StateTranscoded  State = "transcoded"
	StateTranscribed State = "transcribed"
	StatePersisted   State = "persisted"
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
)

var (
	// ErrValidation matches every rejected upload.
	ErrValidation        = errors.New("invalid upload")
	ErrMissingFile       = errors.New("missing file")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyUpload       = errors.New("empty upload")
	// ErrMissingArtifact means a tool exited 0 without writing its output.
	ErrMissingArtifact = errors.New("expected artifact missing")
)

// ValidationError is a client-side problem with the upload. Its message is
// safe to return to the caller verbatim.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Kind} }

// StageError is the failure outcome of a pipeline run.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error { return e.Cause }

// StageOf reports the stage err failed in, if any.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// run tracks one Convert call through its states.
type run struct {
	state State
	log   *zap.Logger
}

func (r *run) advance(next State) {
	r.log.Debug("conversion state changed",
		zap.String("from", string(r.state)),
		zap.String("to", string(next)))
	r.state = next
}
