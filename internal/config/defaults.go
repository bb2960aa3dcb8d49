package config

import "time"

// Default configuration constants
const (
	// Timeout defaults
	DefaultTranscoderTimeout = 2 * time.Minute
	DefaultRecognizerTimeout = 10 * time.Minute

	// MaxToolTimeout bounds any configured per-tool timeout.
	MaxToolTimeout = 2 * time.Hour

	// Network defaults
	DefaultHTTPPort = "8080"

	// Size defaults
	DefaultMaxUploadBytes = 100 << 20
	DefaultMaxOutputBytes = 4 << 20
)
