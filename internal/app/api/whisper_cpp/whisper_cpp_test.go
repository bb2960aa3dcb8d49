package whisper_cpp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wavify/internal/app/testutil"
	"wavify/internal/app/toolexec"
	"wavify/internal/config"
)

func TestLocalTranscriber_Transcribe(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RecognizerConfig
		wantArgs func(wav, dir string) []string
	}{
		{
			name: "openai whisper",
			cfg: config.RecognizerConfig{
				Path: "/opt/venv/bin/whisper", Flavor: FlavorWhisper, Model: "base",
				Language: "en", OutputFormat: "txt", Timeout: time.Minute,
			},
			wantArgs: func(wav, dir string) []string {
				return []string{wav, "--language", "en", "--model", "base", "--output_format", "txt", "--output_dir", dir}
			},
		},
		{
			name: "whisper.cpp",
			cfg: config.RecognizerConfig{
				Path: "/opt/whisper.cpp/main", Flavor: FlavorWhisperCpp, Model: "/models/ggml-base.en.bin",
				Language: "en", OutputFormat: "txt", Timeout: time.Minute,
			},
			wantArgs: func(wav, dir string) []string {
				return []string{"-m", "/models/ggml-base.en.bin", "-l", "en", "-otxt", "-f", wav, "-of", filepath.Join(dir, "waveform")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "transcript")
			wav := filepath.Join(t.TempDir(), "waveform.wav")

			runner := new(testutil.MockRunner)
			runner.On("Run", mock.Anything, toolexec.Invocation{
				Tool:    tt.cfg.Flavor,
				Path:    tt.cfg.Path,
				Args:    tt.wantArgs(wav, dir),
				Timeout: time.Minute,
			}).Return(toolexec.Result{Tool: tt.cfg.Flavor}, nil)

			lt := NewLocalTranscriber(tt.cfg, runner)
			path, _, err := lt.Transcribe(context.Background(), wav, dir)

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "waveform.txt"), path)
			assert.DirExists(t, dir)
			runner.AssertExpectations(t)
		})
	}
}

func TestLocalTranscriber_TimeoutPropagates(t *testing.T) {
	runner := new(testutil.MockRunner)
	toolErr := &toolexec.Error{Kind: toolexec.ErrToolTimeout, Tool: "whisper"}
	runner.On("Run", mock.Anything, mock.Anything).Return(toolexec.Result{Tool: "whisper"}, toolErr)

	lt := NewLocalTranscriber(config.RecognizerConfig{Path: "whisper", Flavor: FlavorWhisper, OutputFormat: "txt"}, runner)
	_, _, err := lt.Transcribe(context.Background(), "waveform.wav", t.TempDir())

	assert.ErrorIs(t, err, toolexec.ErrToolTimeout)
}

func TestLocalTranscriber_Probe(t *testing.T) {
	lt := NewLocalTranscriber(config.RecognizerConfig{Path: "/nonexistent/whisper", Flavor: FlavorWhisper}, nil)
	assert.Error(t, lt.Probe(context.Background()))
}
