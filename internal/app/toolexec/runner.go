package toolexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"wavify/internal/app/metrics"
)

// DefaultWaitDelay bounds how long Run waits for output pipes to close after
// the process exits or is killed.
const DefaultWaitDelay = 2 * time.Second

// Invocation describes one external tool call.
type Invocation struct {
	// Tool is a short name used in logs, errors and metrics ("ffmpeg", "whisper").
	Tool string
	// Path is the resolved executable.
	Path    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Result is the outcome of a finished tool call.
type Result struct {
	Tool      string
	ExitCode  int
	Stdout    string
	Stderr    string
	Duration  time.Duration
	Truncated bool
}

// Runner runs external tools.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs tools as child processes on the calling goroutine.
type ExecRunner struct {
	maxOutputBytes int
	waitDelay      time.Duration
	log            *zap.Logger
}

// NewExecRunner creates a runner that retains at most maxOutputBytes of each
// output stream.
func NewExecRunner(maxOutputBytes int, log *zap.Logger) *ExecRunner {
	return &ExecRunner{
		maxOutputBytes: maxOutputBytes,
		waitDelay:      DefaultWaitDelay,
		log:            log.With(zap.String("component", "toolexec")),
	}
}

// Run starts the tool, streams both outputs while it runs and waits for it to
// exit. The process group is killed when inv.Timeout elapses or ctx is done.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	result := Result{Tool: inv.Tool, ExitCode: -1}
	if inv.Path == "" {
		err := &Error{Kind: ErrToolUnavailable, Tool: inv.Tool, Result: result, Err: errors.New("no executable configured")}
		r.finish(inv, result, err)
		return result, err
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if inv.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	stdout := newCappedBuffer(r.maxOutputBytes)
	stderr := newCappedBuffer(r.maxOutputBytes)

	cmd := exec.CommandContext(runCtx, inv.Path, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = r.waitDelay
	configureProcessGroup(cmd)

	r.log.Debug("running tool",
		zap.String("tool", inv.Tool),
		zap.Stringer("command", inv),
		zap.Duration("timeout", inv.Timeout))

	start := time.Now()
	if ctx.Err() != nil {
		toolErr := classify(ctx, ctx, inv.Tool, result, ctx.Err())
		r.finish(inv, result, toolErr)
		return result, toolErr
	}
	if err := cmd.Start(); err != nil {
		result.Duration = time.Since(start)
		toolErr := &Error{Kind: ErrToolUnavailable, Tool: inv.Tool, Result: result, Err: err}
		r.finish(inv, result, toolErr)
		return result, toolErr
	}

	waitErr := cmd.Wait()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Truncated = stdout.Truncated() || stderr.Truncated()
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	err := classify(ctx, runCtx, inv.Tool, result, waitErr)
	if err == nil && waitErr != nil {
		r.log.Warn("tool output pipes held open after exit",
			zap.String("tool", inv.Tool), zap.Error(waitErr))
	}
	r.finish(inv, result, err)
	return result, err
}

func classify(parent, run context.Context, tool string, result Result, waitErr error) error {
	switch {
	case waitErr == nil:
		return nil
	case errors.Is(parent.Err(), context.Canceled):
		return &Error{Kind: ErrToolCanceled, Tool: tool, Result: result, Err: parent.Err()}
	case run.Err() != nil:
		return &Error{Kind: ErrToolTimeout, Tool: tool, Result: result, Err: run.Err()}
	case errors.Is(waitErr, exec.ErrWaitDelay) && result.ExitCode == 0:
		// exited cleanly but a grandchild kept stdout or stderr open
		return nil
	default:
		return &Error{Kind: ErrToolFailed, Tool: tool, Result: result, Err: waitErr}
	}
}

func (r *ExecRunner) finish(inv Invocation, result Result, err error) {
	outcome := Outcome(err)
	metrics.ObserveTool(inv.Tool, outcome, result.Duration)

	fields := []zap.Field{
		zap.String("tool", inv.Tool),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
	}
	switch outcome {
	case "ok":
		r.log.Debug("tool finished", append(fields, zap.Bool("truncated", result.Truncated))...)
	case "timeout":
		r.log.Warn("tool timed out, process group killed", append(fields, zap.Duration("timeout", inv.Timeout))...)
	case "canceled":
		r.log.Info("tool canceled by caller, process group killed", fields...)
	case "unavailable":
		r.log.Error("tool unavailable, check executable path", append(fields, zap.String("path", inv.Path), zap.Error(err))...)
	default:
		r.log.Warn("tool failed", append(fields, zap.String("stderr", stderrTail(result.Stderr)))...)
	}
}

// String renders the invocation as a shell-like command line.
func (inv Invocation) String() string {
	return fmt.Sprintf("%s %s", inv.Path, strings.Join(inv.Args, " "))
}

var _ Runner = (*ExecRunner)(nil)
