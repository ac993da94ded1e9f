// Package launcher runs the external collector and reports how it exited.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/aristath/radar-runner/internal/domain"
	"github.com/rs/zerolog"
)

// ErrEmptyProgram is returned when an invocation names no program.
var ErrEmptyProgram = errors.New("invocation has no program")

// Result describes a finished external process.
type Result struct {
	ExitCode int
	Duration time.Duration
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Launcher starts an invocation and blocks until it exits.
type Launcher interface {
	// Launch returns a Result for any process that started, including
	// non-zero exits. The error is reserved for processes that could not be
	// started at all.
	Launch(ctx context.Context, inv domain.Invocation) (Result, error)
}

// ExecLauncher runs invocations with os/exec, forwarding standard streams.
type ExecLauncher struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
}

// New creates a launcher bound to the current process's standard streams.
func New(log zerolog.Logger) *ExecLauncher {
	return &ExecLauncher{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    log.With().Str("component", "launcher").Logger(),
	}
}

// WithStreams replaces the streams handed to child processes.
func (l *ExecLauncher) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *ExecLauncher {
	l.stdin = stdin
	l.stdout = stdout
	l.stderr = stderr
	return l
}

// Launch runs inv and waits for it. ctx is only checked before starting: a
// started process is never killed by the launcher.
func (l *ExecLauncher) Launch(ctx context.Context, inv domain.Invocation) (Result, error) {
	if inv.Program == "" {
		return Result{ExitCode: -1}, ErrEmptyProgram
	}
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, err
	}

	cmd := exec.Command(inv.Program, inv.Argv()...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	l.log.Debug().
		Str("program", inv.Program).
		Strs("args", inv.Argv()).
		Msg("Starting external program")

	start := time.Now()
	err := cmd.Run()
	result := Result{Duration: time.Since(start)}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to start %s: %w", inv.Program, err)
}
