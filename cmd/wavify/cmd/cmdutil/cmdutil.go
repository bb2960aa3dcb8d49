package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wavify/internal/config"
	"wavify/internal/logging"
)

// Flags collects the config overrides given on the command line.
var Flags config.Overrides

// Verbose forces debug logging.
var Verbose bool

// BindTranscribe registers --transcribe on cmd.
func BindTranscribe(cmd *cobra.Command) {
	cmd.Flags().Bool("transcribe", false, "return transcripts instead of waveforms")
}

// Setup resolves the configuration for cmd and builds the logger.
func Setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	overrides := Flags
	if f := cmd.Flags().Lookup("transcribe"); f != nil && f.Changed {
		enabled, err := cmd.Flags().GetBool("transcribe")
		if err != nil {
			return nil, nil, err
		}
		overrides.TranscriptionEnabled = &enabled
	}
	if Verbose {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
