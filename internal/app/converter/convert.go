package converter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"wavify/internal/app/api"
	"wavify/internal/app/metrics"
	"wavify/internal/app/model"
	"wavify/internal/app/repository"
	"wavify/internal/app/toolexec"
	"wavify/internal/app/util/files"
	"wavify/internal/app/workspace"
)

// WaveformContentType is the content type of converted audio.
const WaveformContentType = "audio/wav"

const defaultPersistTimeout = 5 * time.Second

// Options configures a Pipeline.
type Options struct {
	// AcceptedExtensions are lower-case and dot-prefixed.
	AcceptedExtensions   []string
	TranscriptionEnabled bool
	PersistTimeout       time.Duration
}

// Upload is one file submitted for conversion.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	RequestID   string
}

// Result is a successful conversion. Exactly one of Audio or Transcript is
// set, according to Kind.
type Result struct {
	Kind        string
	Audio       []byte
	Transcript  string
	Filename    string
	ContentType string
	RecordID    string
	Persisted   bool
}

// Pipeline validates an upload, transcodes it, optionally transcribes it and
// records the attempt. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	opts        Options
	workspaces  *workspace.Manager
	transcoder  api.Transcoder
	transcriber api.Transcriber
	recorder    repository.ConversionRecorder
	log         *zap.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts Options, ws *workspace.Manager, transcoder api.Transcoder, transcriber api.Transcriber,
	recorder repository.ConversionRecorder, log *zap.Logger) *Pipeline {
	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = defaultPersistTimeout
	}
	return &Pipeline{
		opts:        opts,
		workspaces:  ws,
		transcoder:  transcoder,
		transcriber: transcriber,
		recorder:    recorder,
		log:         log.With(zap.String("component", "pipeline")),
	}
}

// Mode returns the kind of result this pipeline produces.
func (p *Pipeline) Mode() string {
	if p.opts.TranscriptionEnabled {
		return model.ModeTranscript
	}
	return model.ModeWaveform
}

// AcceptedExtensions returns the configured upload extensions.
func (p *Pipeline) AcceptedExtensions() []string {
	return append([]string(nil), p.opts.AcceptedExtensions...)
}

// Convert runs the whole pipeline for one upload. Failures are *StageError.
// The workspace is always released before Convert returns.
func (p *Pipeline) Convert(ctx context.Context, up Upload) (*Result, error) {
	start := time.Now()
	r := &run{
		state: StateReceived,
		log:   p.log.With(zap.String("request_id", up.RequestID), zap.String("filename", up.Filename)),
	}

	ext, body, err := p.validate(up)
	if err != nil {
		r.advance(StateFailed)
		r.log.Info("upload rejected", zap.Error(err))
		metrics.ConversionsTotal.WithLabelValues(p.Mode(), model.StatusFailed, string(StageValidation)).Inc()
		return nil, &StageError{Stage: StageValidation, Cause: err}
	}
	r.advance(StateValidated)

	ws, err := p.workspaces.Acquire(up.RequestID, ext)
	if err != nil {
		return nil, p.fail(ctx, r, up, start, StageTranscode, err)
	}
	defer ws.Release()

	if err := writeSource(ws.SourcePath, body); err != nil {
		return nil, p.fail(ctx, r, up, start, StageTranscode, err)
	}

	if _, err := p.transcoder.Transcode(ctx, ws.SourcePath, ws.WaveformPath); err != nil {
		return nil, p.fail(ctx, r, up, start, StageTranscode, err)
	}
	if err := checkArtifact(ws.WaveformPath, files.CheckNonEmpty); err != nil {
		return nil, p.fail(ctx, r, up, start, StageTranscode, err)
	}
	r.advance(StateTranscoded)

	result := &Result{Kind: p.Mode()}
	if p.opts.TranscriptionEnabled {
		transcriptPath, _, err := p.transcriber.Transcribe(ctx, ws.WaveformPath, ws.TranscriptDir)
		if transcriptPath != "" {
			ws.Track(transcriptPath)
		}
		if err != nil {
			return nil, p.fail(ctx, r, up, start, StageTranscribe, err)
		}
		// silent audio yields an empty transcript file
		if err := checkArtifact(transcriptPath, files.CheckExists); err != nil {
			return nil, p.fail(ctx, r, up, start, StageTranscribe, err)
		}
		text, err := files.ReadOutputFile(transcriptPath)
		if err != nil {
			return nil, p.fail(ctx, r, up, start, StageTranscribe, err)
		}
		result.Transcript = text
		result.ContentType = "application/json"
		r.advance(StateTranscribed)
	} else {
		audio, err := os.ReadFile(ws.WaveformPath)
		if err != nil {
			return nil, p.fail(ctx, r, up, start, StageTranscode, err)
		}
		result.Audio = audio
		result.ContentType = WaveformContentType
		result.Filename = WaveformFilename(up.Filename)
	}

	result.RecordID, result.Persisted = p.persist(ctx, r, p.newRecord(up, start, model.StatusCompleted, "", nil))
	r.advance(StatePersisted)

	metrics.ConversionsTotal.WithLabelValues(p.Mode(), model.StatusCompleted, "").Inc()
	r.log.Info("conversion completed",
		zap.String("mode", result.Kind),
		zap.Int("audio_bytes", len(result.Audio)),
		zap.Int("transcript_chars", len(result.Transcript)),
		zap.Bool("persisted", result.Persisted),
		zap.Duration("duration", time.Since(start)))
	r.advance(StateCompleted)
	return result, nil
}

// ConvertFile runs the pipeline on a local file.
func (p *Pipeline) ConvertFile(ctx context.Context, path, requestID string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &StageError{Stage: StageValidation, Cause: &ValidationError{
			Kind:    ErrMissingFile,
			Message: fmt.Sprintf("cannot open %s: %v", path, err),
		}}
	}
	defer f.Close()

	return p.Convert(ctx, Upload{Filename: filepath.Base(path), Body: f, RequestID: requestID})
}

// validate checks the upload without touching the filesystem. It returns the
// normalized extension and a reader that still yields the whole body.
func (p *Pipeline) validate(up Upload) (string, io.Reader, error) {
	if strings.TrimSpace(up.Filename) == "" || up.Body == nil {
		return "", nil, &ValidationError{Kind: ErrMissingFile, Message: "file is required"}
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !lo.Contains(p.opts.AcceptedExtensions, ext) {
		return "", nil, &ValidationError{
			Kind:    ErrUnsupportedFormat,
			Message: "only accepted audio formats allowed: " + strings.Join(p.opts.AcceptedExtensions, ", "),
		}
	}

	body := bufio.NewReader(up.Body)
	if _, err := body.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil, &ValidationError{Kind: ErrEmptyUpload, Message: "uploaded file is empty"}
		}
		return "", nil, &ValidationError{Kind: ErrMissingFile, Message: fmt.Sprintf("cannot read upload: %v", err)}
	}
	return ext, body, nil
}

// fail records a failed attempt and builds the StageError returned to the caller.
func (p *Pipeline) fail(ctx context.Context, r *run, up Upload, start time.Time, stage Stage, cause error) error {
	r.advance(StateFailed)

	level := zap.WarnLevel
	if errors.Is(cause, toolexec.ErrToolCanceled) {
		level = zap.InfoLevel
	}
	r.log.Log(level, "conversion failed",
		zap.String("stage", string(stage)),
		zap.String("outcome", toolexec.Outcome(cause)),
		zap.Error(cause))

	metrics.ConversionsTotal.WithLabelValues(p.Mode(), model.StatusFailed, string(stage)).Inc()
	p.persist(ctx, r, p.newRecord(up, start, model.StatusFailed, stage, cause))
	return &StageError{Stage: stage, Cause: cause}
}

// persist writes rec on a context detached from request cancellation.
// Failures are logged and counted, never returned.
func (p *Pipeline) persist(ctx context.Context, r *run, rec *model.ConversionRecord) (string, bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.opts.PersistTimeout)
	defer cancel()

	id, err := p.recorder.Record(ctx, rec)
	if err != nil {
		metrics.PersistenceFailuresTotal.Inc()
		r.log.Warn("failed to record conversion, continuing",
			zap.String("stage", string(StagePersistence)),
			zap.Error(err))
		return "", false
	}
	return id, true
}

func (p *Pipeline) newRecord(up Upload, start time.Time, status string, stage Stage, cause error) *model.ConversionRecord {
	rec := &model.ConversionRecord{
		Filename:    up.Filename,
		ConvertedAt: time.Now().UTC(),
		Mode:        p.Mode(),
		Status:      status,
		FailedStage: string(stage),
		DurationMs:  time.Since(start).Milliseconds(),
	}
	repository.EnsureID(rec)
	if cause != nil {
		rec.ErrorMessage = cause.Error()
	}
	return rec
}

// WaveformFilename derives the download name for a converted upload.
func WaveformFilename(uploaded string) string {
	base := filepath.Base(uploaded)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "converted"
	}
	return base + ".wav"
}

func writeSource(path string, body io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create source file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write source file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write source file: %w", err)
	}
	return nil
}

// checkArtifact reports a tool that exited cleanly without producing output
// as a tool failure.
func checkArtifact(path string, check func(string) error) error {
	if path == "" {
		return fmt.Errorf("%w: %w: no output path", toolexec.ErrToolFailed, ErrMissingArtifact)
	}
	if err := check(path); err != nil {
		return fmt.Errorf("%w: %w: %s: %v", toolexec.ErrToolFailed, ErrMissingArtifact, filepath.Base(path), err)
	}
	return nil
}
