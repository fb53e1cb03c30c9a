// Package session drives one conversion request at a time through
// validation, optional overwrite confirmation, and the compiler run.
//
//	Idle → Validating → Rejected
//	                  → AwaitingConfirmation → Idle (cancel)
//	                                         → Validating → Running (ok)
//	                  → Running → Succeeded | Failed
//
// Rejected, Succeeded and Failed end a request; the next Submit starts over.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/resolve"
	"TUI-UI-Converter/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrBusy is returned when a trigger arrives while a request is in flight.
	ErrBusy = errors.New("a conversion is already in progress")
	// ErrNoPendingConfirmation is returned by Confirm outside AwaitingConfirmation.
	ErrNoPendingConfirmation = errors.New("no overwrite confirmation is pending")
	// ErrNotRunning is returned by Execute when no validated request is waiting to run.
	ErrNotRunning = errors.New("no validated conversion is ready to run")
)

// Messages shown in the log panel and dialogs.
const (
	LineInputValid      = "Input file is valid."
	LineConverting      = "Converting...."
	LineComplete        = "Conversion complete!"
	LineFailed          = "Conversion failed!"
	LineBusy            = "A conversion is already in progress."
	PromptOverwrite     = "Selected File Exists!\nDo You Want to Overwrite Existing File?"
	WarningLaunchFailed = "An error has occurred and the conversion was not completed.\nPlease check the status window for more information."
	WarningNoOutput     = "An error has occurred and the conversion was not completed.\nPlease check your inputs and try again."
)

// Runner is the part of convert.Runner the session needs.
type Runner interface {
	Run(ctx context.Context, dir, input, output string) convert.Outcome
}

// Step is what one transition produced: the state reached and the log lines
// to append, in order.
type Step struct {
	RequestID string
	State     types.ConversionState
	Lines     []string
	Result    resolve.Result
	Outcome   *convert.Outcome
	Prompt    string // set in AwaitingConfirmation
	Warning   string // set when the run failed and a modal warning is due
}

// Session holds the state of the current request.
type Session struct {
	mu        sync.Mutex
	resolver  *resolve.Resolver
	runner    Runner
	logger    *zap.Logger
	state     types.ConversionState
	requestID string
	pending   resolve.Result
}

// New creates an idle session.
func New(resolver *resolve.Resolver, runner Runner, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		resolver: resolver,
		runner:   runner,
		logger:   logger.Named("session"),
		state:    types.StateIdle,
	}
}

// State returns the current state.
func (s *Session) State() types.ConversionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit starts a request from the raw path strings. It fails with ErrBusy
// while another request is validating, awaiting confirmation, or running.
func (s *Session) Submit(raw resolve.PathInput) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.InFlight() {
		s.logger.Info("Rejected trigger while busy",
			zap.String("request_id", s.requestID),
			zap.Stringer("state", s.state),
		)
		return Step{RequestID: s.requestID, State: s.state, Lines: []string{LineBusy}}, ErrBusy
	}

	s.requestID = uuid.NewString()
	s.pending = resolve.Result{}
	s.transition(types.StateValidating)

	res := s.resolver.Resolve(raw)
	step := Step{RequestID: s.requestID, Result: res}

	switch res.Kind {
	case resolve.InvalidInputPath:
		step.Lines = []string{res.Reason}
		s.transition(types.StateRejected)

	case resolve.InvalidOutputPath:
		step.Lines = []string{LineInputValid, res.Reason}
		s.transition(types.StateRejected)

	case resolve.NeedsOverwriteConfirmation:
		step.Lines = []string{LineInputValid}
		step.Prompt = PromptOverwrite
		s.pending = res
		s.transition(types.StateAwaitingConfirmation)

	default:
		step.Lines = []string{LineInputValid, LineConverting}
		s.pending = res
		s.transition(types.StateRunning)
	}

	s.logger.Info("Resolved paths",
		zap.String("request_id", s.requestID),
		zap.Stringer("result", res.Kind),
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Bool("derived", res.Derived),
		zap.String("reason", res.Reason),
	)
	step.State = s.state
	return step, nil
}

// Confirm answers the overwrite question. Cancelling returns the session to
// Idle without running anything; accepting re-validates and readies the run.
func (s *Session) Confirm(ok bool) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != types.StateAwaitingConfirmation {
		return Step{RequestID: s.requestID, State: s.state}, ErrNoPendingConfirmation
	}

	step := Step{RequestID: s.requestID, Result: s.pending}
	if !ok {
		s.logger.Info("Overwrite declined", zap.String("request_id", s.requestID), zap.String("output", s.pending.Output))
		s.pending = resolve.Result{}
		s.transition(types.StateIdle)
		step.State = s.state
		return step, nil
	}

	s.transition(types.StateValidating)
	s.transition(types.StateRunning)
	step.Lines = []string{LineConverting}
	step.State = s.state
	return step, nil
}

// Execute runs the compiler for the validated request. The session stays in
// Running, and so refuses new triggers, until the runner returns.
func (s *Session) Execute(ctx context.Context) (Step, error) {
	s.mu.Lock()
	if s.state != types.StateRunning {
		state := s.state
		s.mu.Unlock()
		return Step{RequestID: s.requestID, State: state}, ErrNotRunning
	}
	res := s.pending
	id := s.requestID
	s.mu.Unlock()

	outcome := s.runner.Run(ctx, res.Dir, res.Input, res.Output)

	step := Step{RequestID: id, Result: res, Outcome: &outcome}
	switch outcome.Kind {
	case convert.Success:
		step.Lines = []string{
			LineComplete,
			fmt.Sprintf("See %s for converted file.", filepath.Dir(outcome.Output)+string(filepath.Separator)),
		}
	case convert.ProcessLaunchFailed:
		step.Lines = []string{outcome.Err.Error()}
		step.Warning = WarningLaunchFailed
	default:
		step.Lines = []string{LineFailed}
		step.Warning = WarningNoOutput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if outcome.Kind == convert.Success {
		s.transition(types.StateSucceeded)
	} else {
		s.transition(types.StateFailed)
	}
	s.pending = resolve.Result{}

	s.logger.Info("Conversion finished",
		zap.String("request_id", id),
		zap.Stringer("outcome", outcome.Kind),
		zap.String("output", outcome.Output),
		zap.Duration("elapsed", outcome.Elapsed),
		zap.Bool("timed_out", outcome.TimedOut),
	)
	step.State = s.state
	return step, nil
}

// transition must be called with mu held.
func (s *Session) transition(to types.ConversionState) {
	s.logger.Debug("State change",
		zap.String("request_id", s.requestID),
		zap.Stringer("from", s.state),
		zap.Stringer("to", to),
	)
	s.state = to
}
