package audio

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"wavify/internal/app/toolexec"
)

// ToolName labels ffmpeg invocations in logs and metrics.
const ToolName = "ffmpeg"

// Transcoder wraps the ffmpeg command line.
type Transcoder struct {
	path    string
	timeout time.Duration
	runner  toolexec.Runner
}

// NewTranscoder creates a transcoder running the executable at path.
func NewTranscoder(path string, timeout time.Duration, runner toolexec.Runner) *Transcoder {
	return &Transcoder{path: path, timeout: timeout, runner: runner}
}

// Transcode converts source into target, overwriting target if present.
// The output format follows from target's extension.
func (t *Transcoder) Transcode(ctx context.Context, source, target string) (toolexec.Result, error) {
	return t.runner.Run(ctx, toolexec.Invocation{
		Tool:    ToolName,
		Path:    t.path,
		Args:    []string{"-y", "-i", source, target},
		Timeout: t.timeout,
	})
}

// Probe checks that the ffmpeg executable resolves.
func (t *Transcoder) Probe(_ context.Context) error {
	if _, err := exec.LookPath(t.path); err != nil {
		return fmt.Errorf("%s: %w", ToolName, err)
	}
	return nil
}
