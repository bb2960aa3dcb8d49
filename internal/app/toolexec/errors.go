package toolexec

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Failure kinds. Match them with errors.Is.
var (
	// ErrToolUnavailable means the executable could not be found or started.
	ErrToolUnavailable = errors.New("tool unavailable")
	// ErrToolFailed means the tool ran but exited with a non-zero status.
	ErrToolFailed = errors.New("tool failed")
	// ErrToolTimeout means the tool ran past its configured timeout and was killed.
	ErrToolTimeout = errors.New("tool timed out")
	// ErrToolCanceled means the caller's context was canceled while the tool ran.
	ErrToolCanceled = errors.New("tool canceled")
)

const stderrTailBytes = 512

// Error describes a failed invocation. Result holds whatever the tool
// produced before it failed.
type Error struct {
	Kind   error
	Tool   string
	Result Result
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case ErrToolFailed:
		fmt.Fprintf(&b, "%s exited with status %d", e.Tool, e.Result.ExitCode)
	case ErrToolTimeout:
		fmt.Fprintf(&b, "%s timed out after %s", e.Tool, e.Result.Duration.Round(time.Millisecond))
	case ErrToolCanceled:
		fmt.Fprintf(&b, "%s canceled", e.Tool)
	default:
		fmt.Fprintf(&b, "%s unavailable", e.Tool)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if tail := stderrTail(e.Result.Stderr); tail != "" {
		fmt.Fprintf(&b, ", stderr: %s", tail)
	}
	return b.String()
}

// Unwrap exposes both the failure kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Outcome returns a short label for err, used for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrToolTimeout):
		return "timeout"
	case errors.Is(err, ErrToolCanceled):
		return "canceled"
	case errors.Is(err, ErrToolUnavailable):
		return "unavailable"
	default:
		return "failed"
	}
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrTailBytes {
		return s
	}
	return "..." + s[len(s)-stderrTailBytes:]
}
