package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func Validate(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}

	for name, timeout := range map[string]time.Duration{
		"transcoder": cfg.Transcoder.Timeout,
		"recognizer": cfg.Recognizer.Timeout,
		"store":      cfg.Store.Timeout,
		"persist":    cfg.Pipeline.PersistTimeout,
	} {
		if err := ValidateTimeout(timeout, name); err != nil {
			problems = append(problems, err.Error())
		}
	}

	for _, ext := range cfg.Pipeline.AcceptedExtensions {
		if err := ValidateExtension(ext); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if cfg.Store.Driver != "none" && strings.TrimSpace(cfg.Store.DSN) == "" {
		problems = append(problems, fmt.Sprintf("store dsn is required for driver %q", cfg.Store.Driver))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > MaxToolTimeout {
		return fmt.Errorf("%s timeout too large (max %s)", name, MaxToolTimeout)
	}
	return nil
}

// ValidateExtension validates a normalized file extension such as ".mp3".
func ValidateExtension(ext string) error {
	if len(ext) < 2 || ext[0] != '.' {
		return fmt.Errorf("extension %q must start with a dot", ext)
	}
	if strings.ContainsAny(ext[1:], `./\`) {
		return fmt.Errorf("extension %q contains a path separator", ext)
	}
	return nil
}
