// Package sandbox validates operator diagnostic commands against a fixed
// allowlist and executes them as isolated, deadline-bounded child processes
// with captured output. Requests move through a small state machine:
// received -> validated -> executing -> completed, or received -> rejected.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/probeworks/lanscope/pkg/models"
)

// Sandbox executes one allowlisted command per request. Requests are
// independent and synchronous; there is no internal queuing.
type Sandbox struct {
	execTimeout time.Duration
	maxOutput   int
	windows     bool
	logger      *zap.Logger
}

// NewSandbox creates a command sandbox from the module configuration.
func NewSandbox(cfg Config, logger *zap.Logger) *Sandbox {
	return &Sandbox{
		execTimeout: cfg.ExecTimeout,
		maxOutput:   cfg.MaxOutputBytes,
		windows:     runtime.GOOS == "windows",
		logger:      logger,
	}
}

// transition records a request's movement through the state machine.
func (s *Sandbox) transition(state models.CommandState, fields ...zap.Field) {
	s.logger.Debug("command state",
		append([]zap.Field{zap.String("state", string(state))}, fields...)...)
}

// Run validates and executes one command request. It never returns an
// error: rejection and timeout are normal outcomes. Success is true only
// when validation passed and the child process exited with status zero.
func (s *Sandbox) Run(ctx context.Context, raw string) *models.CommandOutcome {
	s.transition(models.CommandReceived, zap.String("input", raw))

	argv, reason, help := validate(raw, s.windows)
	if help {
		s.transition(models.CommandCompleted)
		requestsTotal.WithLabelValues("ok").Inc()
		return &models.CommandOutcome{
			Success: true,
			Output:  reason,
			State:   models.CommandCompleted,
		}
	}
	if argv == nil {
		s.transition(models.CommandRejected, zap.String("reason", reason))
		s.logger.Info("command rejected", zap.String("input", raw))
		requestsTotal.WithLabelValues("rejected").Inc()
		return &models.CommandOutcome{
			Success: false,
			Output:  reason,
			State:   models.CommandRejected,
		}
	}

	s.transition(models.CommandValidated, zap.Strings("argv", argv))

	ctx, cancel := context.WithTimeout(ctx, s.execTimeout)
	defer cancel()

	// The child is argv-exec'd, never handed to a shell, and owns no
	// descriptors beyond the capture pipe. CommandContext kills it when
	// the deadline elapses.
	out := &truncatingWriter{limit: s.maxOutput}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = out
	cmd.Stderr = out

	s.transition(models.CommandExecuting, zap.String("command", argv[0]))

	start := time.Now()
	err := cmd.Run()

	outcome := &models.CommandOutcome{State: models.CommandCompleted, Output: out.String()}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		outcome.Output = fmt.Sprintf("error: command timed out after %s", s.execTimeout)
		requestsTotal.WithLabelValues("timeout").Inc()
	case errors.Is(err, exec.ErrNotFound):
		outcome.Output = fmt.Sprintf("error: command %q not found", argv[0])
		requestsTotal.WithLabelValues("failed").Inc()
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			outcome.ExitCode = &code
		}
		if outcome.Output == "" {
			outcome.Output = "error: " + err.Error()
		}
		requestsTotal.WithLabelValues("failed").Inc()
	default:
		code := 0
		outcome.ExitCode = &code
		outcome.Success = true
		if outcome.Output == "" {
			outcome.Output = "command completed with no output"
		}
		requestsTotal.WithLabelValues("ok").Inc()
	}

	s.transition(models.CommandCompleted, zap.Bool("success", outcome.Success))
	s.logger.Info("command executed",
		zap.String("command", argv[0]),
		zap.Bool("success", outcome.Success),
		zap.Duration("elapsed", time.Since(start)),
	)
	return outcome
}

// truncationMarker is appended when captured output exceeds the cap.
const truncationMarker = "\n[output truncated]"

// truncatingWriter stores at most limit bytes and discards the rest, so a
// chatty child cannot grow memory without bound.
type truncatingWriter struct {
	buf       []byte
	limit     int
	truncated bool
}

func (w *truncatingWriter) Write(p []byte) (int, error) {
	if remaining := w.limit - len(w.buf); remaining > 0 {
		if len(p) > remaining {
			w.buf = append(w.buf, p[:remaining]...)
			w.truncated = true
		} else {
			w.buf = append(w.buf, p...)
		}
	} else if len(p) > 0 {
		w.truncated = true
	}
	return len(p), nil
}

func (w *truncatingWriter) String() string {
	if w.truncated {
		return string(w.buf) + truncationMarker
	}
	return string(w.buf)
}
