package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration, built once at process start.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Store      StoreConfig      `yaml:"store"`
	Transcoder TranscoderConfig `yaml:"transcoder"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Log        LogConfig        `yaml:"log"`
}

// HTTPConfig represents API server configuration
type HTTPConfig struct {
	Host            string        `yaml:"host" env:"WAVIFY_HTTP_HOST"`
	Port            string        `yaml:"port" env:"WAVIFY_HTTP_PORT" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"WAVIFY_HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WAVIFY_HTTP_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"WAVIFY_HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"WAVIFY_HTTP_SHUTDOWN_TIMEOUT"`
	Environment     string        `yaml:"environment" env:"WAVIFY_ENVIRONMENT" validate:"oneof=development production test"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"WAVIFY_MAX_UPLOAD_BYTES" validate:"gt=0"`
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// StoreConfig selects and configures the metadata store.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"WAVIFY_STORE_DRIVER" validate:"oneof=sqlite postgres redis none"`
	// DSN is a file path for sqlite, a connection string for postgres and a
	// redis:// URL for redis.
	DSN string `yaml:"dsn" env:"WAVIFY_STORE_DSN"`
	// Database overrides the database name in a postgres DSN.
	Database string `yaml:"database" env:"WAVIFY_STORE_DATABASE"`
	// Collection is the table name (sql drivers) or stream key (redis).
	Collection string        `yaml:"collection" env:"WAVIFY_STORE_COLLECTION" validate:"required,identifier"`
	Timeout    time.Duration `yaml:"timeout" env:"WAVIFY_STORE_TIMEOUT"`
}

// TranscoderConfig configures the external transcoder.
type TranscoderConfig struct {
	Path    string        `yaml:"path" env:"WAVIFY_TRANSCODER_PATH" validate:"required"`
	Timeout time.Duration `yaml:"timeout" env:"WAVIFY_TRANSCODER_TIMEOUT"`
}

// RecognizerConfig configures the external speech-recognition tool.
type RecognizerConfig struct {
	Path         string        `yaml:"path" env:"WAVIFY_RECOGNIZER_PATH" validate:"required"`
	Flavor       string        `yaml:"flavor" env:"WAVIFY_RECOGNIZER_FLAVOR" validate:"oneof=whisper whisper_cpp"`
	Model        string        `yaml:"model" env:"WAVIFY_RECOGNIZER_MODEL" validate:"required"`
	Language     string        `yaml:"language" env:"WAVIFY_RECOGNIZER_LANGUAGE" validate:"required"`
	OutputFormat string        `yaml:"output_format" env:"WAVIFY_RECOGNIZER_OUTPUT_FORMAT" validate:"oneof=txt"`
	Timeout      time.Duration `yaml:"timeout" env:"WAVIFY_RECOGNIZER_TIMEOUT"`
}

// PipelineConfig configures the conversion pipeline.
type PipelineConfig struct {
	TranscriptionEnabled bool          `yaml:"transcription_enabled" env:"WAVIFY_TRANSCRIPTION_ENABLED"`
	AcceptedExtensions   []string      `yaml:"accepted_extensions" env:"WAVIFY_ACCEPTED_EXTENSIONS" envSeparator:"," validate:"min=1"`
	WorkDir              string        `yaml:"work_dir" env:"WAVIFY_WORK_DIR"`
	PersistTimeout       time.Duration `yaml:"persist_timeout" env:"WAVIFY_PERSIST_TIMEOUT"`
	MaxOutputBytes       int           `yaml:"max_output_bytes" env:"WAVIFY_MAX_OUTPUT_BYTES" validate:"gt=0"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"WAVIFY_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"WAVIFY_LOG_FORMAT" validate:"oneof=json console"`
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	ConfigFile           string
	EnvFile              string
	Port                 string
	LogLevel             string
	StoreDriver          string
	StoreDSN             string
	TranscriptionEnabled *bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Host:            "",
			Port:            DefaultHTTPPort,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    DefaultRecognizerTimeout + DefaultTranscoderTimeout,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
			MaxUploadBytes:  DefaultMaxUploadBytes,
		},
		Store: StoreConfig{
			Driver:     "sqlite",
			DSN:        filepath.Join("data", "wavify.db"),
			Collection: "conversions",
			Timeout:    5 * time.Second,
		},
		Transcoder: TranscoderConfig{
			Path:    "ffmpeg",
			Timeout: DefaultTranscoderTimeout,
		},
		Recognizer: RecognizerConfig{
			Path:         "whisper",
			Flavor:       "whisper",
			Model:        "base",
			Language:     "en",
			OutputFormat: "txt",
			Timeout:      DefaultRecognizerTimeout,
		},
		Pipeline: PipelineConfig{
			AcceptedExtensions: []string{".mp3"},
			WorkDir:            os.TempDir(),
			PersistTimeout:     5 * time.Second,
			MaxOutputBytes:     DefaultMaxOutputBytes,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file, a .env file,
// environment variables and CLI overrides.
// Priority: CLI flags > environment variables > .env file > YAML file > defaults.
func Load(overrides Overrides) (*Config, error) {
	if _, err := LoadEnv(overrides.EnvFile); err != nil {
		return nil, err
	}

	cfg := Default()

	configFile := overrides.ConfigFile
	if configFile == "" {
		configFile = os.Getenv("WAVIFY_CONFIG")
	}
	if configFile != "" {
		if err := loadFile(cfg, configFile); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.Port != "" {
		cfg.HTTP.Port = overrides.Port
	}
	if overrides.LogLevel != "" {
		cfg.Log.Level = overrides.LogLevel
	}
	if overrides.StoreDriver != "" {
		cfg.Store.Driver = overrides.StoreDriver
	}
	if overrides.StoreDSN != "" {
		cfg.Store.DSN = overrides.StoreDSN
	}
	if overrides.TranscriptionEnabled != nil {
		cfg.Pipeline.TranscriptionEnabled = *overrides.TranscriptionEnabled
	}

	cfg.Pipeline.AcceptedExtensions = NormalizeExtensions(cfg.Pipeline.AcceptedExtensions)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// NormalizeExtensions lower-cases, dot-prefixes and de-duplicates extensions.
// Blank entries are dropped.
func NormalizeExtensions(exts []string) []string {
	normalized := lo.FilterMap(exts, func(ext string, _ int) (string, bool) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return "", false
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return ext, true
	})
	return lo.Uniq(normalized)
}
