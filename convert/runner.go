// Package convert runs the external UI compiler and classifies what it left
// behind.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

// DefaultTimeout is how long Run waits for the compiler.
const DefaultTimeout = 5 * time.Second

// maxCapturedOutput bounds the compiler output kept for the debug log.
const maxCapturedOutput = 64 * 1024

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	ProcessLaunchFailed
	TimedOutOrNoOutputProduced
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "Success"
	case ProcessLaunchFailed:
		return "ProcessLaunchFailed"
	case TimedOutOrNoOutputProduced:
		return "TimedOutOrNoOutputProduced"
	default:
		return "Unknown"
	}
}

// Outcome is the classified result of one Run.
type Outcome struct {
	Kind     OutcomeKind
	Output   string
	Err      error // launch error, set only for ProcessLaunchFailed
	Args     []string
	Elapsed  time.Duration
	TimedOut bool // the wait window closed first; informational only
}

// Runner launches the compiler as `<command...> -x -o <output> <input>`.
type Runner struct {
	command []string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner parses toolCommand with shell quoting rules, so that commands like
// `python -m PyQt5.uic.pyuic` work.
func NewRunner(toolCommand string, timeout time.Duration, logger *zap.Logger) (*Runner, error) {
	words, err := shellwords.Parse(toolCommand)
	if err != nil {
		return nil, fmt.Errorf("could not parse tool command %q: %w", toolCommand, err)
	}
	if len(words) == 0 {
		return nil, errors.New("tool command cannot be empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{command: words, timeout: timeout, logger: logger.Named("runner")}, nil
}

// Command returns the parsed tool command.
func (r *Runner) Command() []string {
	return append([]string(nil), r.command...)
}

// Timeout returns the wait window.
func (r *Runner) Timeout() time.Duration { return r.timeout }

// Args builds the full argument vector for one conversion.
func (r *Runner) Args(input, output string) []string {
	args := append([]string(nil), r.command...)
	return append(args, "-x", "-o", output, input)
}

// Run launches the compiler in dir and waits up to the timeout. When the wait
// window closes, or ctx is cancelled, the child is killed.
//
// Success means a file exists at output once waiting is over. The exit status
// is never consulted, so a compiler that fails but leaves a stale file behind
// is still a Success.
func (r *Runner) Run(ctx context.Context, dir, input, output string) Outcome {
	args := r.Args(input, output)
	log := r.logger.With(zap.String("dir", dir), zap.Strings("args", args))

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	var captured bytes.Buffer
	cmd.Stdout = &limitedWriter{w: &captured, n: maxCapturedOutput}
	cmd.Stderr = cmd.Stdout
	configureProcess(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		log.Warn("Compiler failed to start", zap.Error(err))
		return Outcome{
			Kind:   ProcessLaunchFailed,
			Output: output,
			Err:    fmt.Errorf("failed to start %s: %w", args[0], err),
			Args:   args,
		}
	}
	log.Debug("Compiler started", zap.Int("pid", cmd.Process.Pid))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	var waitErr error
	timedOut := false
	select {
	case waitErr = <-done:
	case <-timer.C:
		timedOut = true
	case <-ctx.Done():
		timedOut = true
	}
	if timedOut {
		if err := killProcess(cmd); err != nil {
			log.Debug("Could not kill compiler", zap.Error(err))
		}
		waitErr = <-done
	}

	outcome := Outcome{
		Kind:     TimedOutOrNoOutputProduced,
		Output:   output,
		Args:     args,
		Elapsed:  time.Since(start),
		TimedOut: timedOut,
	}
	if fileExists(output) {
		outcome.Kind = Success
	}

	log.Debug("Compiler finished",
		zap.Stringer("outcome", outcome.Kind),
		zap.Bool("timed_out", timedOut),
		zap.Duration("elapsed", outcome.Elapsed),
		zap.NamedError("exit", waitErr),
		zap.ByteString("output", captured.Bytes()),
	)
	return outcome
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// limitedWriter keeps at most n bytes and silently drops the rest.
type limitedWriter struct {
	w io.Writer
	n int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.n <= 0 {
		return len(p), nil
	}
	keep := p
	if len(keep) > l.n {
		keep = keep[:l.n]
	}
	if _, err := l.w.Write(keep); err != nil {
		return 0, err
	}
	l.n -= len(keep)
	return len(p), nil
}
