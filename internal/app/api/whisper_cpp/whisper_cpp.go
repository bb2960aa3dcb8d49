package whisper_cpp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"wavify/internal/app/toolexec"
	"wavify/internal/config"
)

// Supported command-line flavors.
const (
	FlavorWhisper    = "whisper"     // openai-whisper python CLI
	FlavorWhisperCpp = "whisper_cpp" // whisper.cpp main/whisper-cli binary
)

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	cfg    config.RecognizerConfig
	runner toolexec.Runner
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(cfg config.RecognizerConfig, runner toolexec.Runner) *LocalTranscriber {
	return &LocalTranscriber{cfg: cfg, runner: runner}
}

// Transcribe runs the recognizer on waveform and returns the path of the
// plain-text transcript it wrote into outputDir. The caller checks that the
// file actually exists.
func (lt *LocalTranscriber) Transcribe(ctx context.Context, waveform, outputDir string) (string, toolexec.Result, error) {
	if err := os.MkdirAll(outputDir, 0o700); err != nil {
		return "", toolexec.Result{Tool: lt.cfg.Flavor, ExitCode: -1}, fmt.Errorf("create transcript directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(waveform), filepath.Ext(waveform))
	outputFile := filepath.Join(outputDir, base)

	result, err := lt.runner.Run(ctx, toolexec.Invocation{
		Tool:    lt.cfg.Flavor,
		Path:    lt.cfg.Path,
		Args:    lt.args(waveform, outputDir, outputFile),
		Timeout: lt.cfg.Timeout,
	})
	return outputFile + "." + lt.cfg.OutputFormat, result, err
}

func (lt *LocalTranscriber) args(waveform, outputDir, outputFile string) []string {
	if lt.cfg.Flavor == FlavorWhisperCpp {
		return []string{
			"-m", lt.cfg.Model,
			"-l", lt.cfg.Language,
			"-o" + lt.cfg.OutputFormat,
			"-f", waveform,
			"-of", outputFile,
		}
	}
	return []string{
		waveform,
		"--language", lt.cfg.Language,
		"--model", lt.cfg.Model,
		"--output_format", lt.cfg.OutputFormat,
		"--output_dir", outputDir,
	}
}

// Probe checks that the recognizer executable resolves.
func (lt *LocalTranscriber) Probe(_ context.Context) error {
	if _, err := exec.LookPath(lt.cfg.Path); err != nil {
		return fmt.Errorf("%s: %w", lt.cfg.Flavor, err)
	}
	return nil
}
