package api

import (
	"context"

	"wavify/internal/app/toolexec"
)

// Transcoder converts a compressed audio file into an uncompressed waveform.
type Transcoder interface {
	Transcode(ctx context.Context, source, target string) (toolexec.Result, error)
}

// Transcriber defines a transcription interface for converting a waveform to text.
// It writes a plain-text transcript into outputDir and returns its path.
type Transcriber interface {
	Transcribe(ctx context.Context, waveform, outputDir string) (string, toolexec.Result, error)
}

// Prober reports whether the backing executable can be resolved.
type Prober interface {
	Probe(ctx context.Context) error
}
