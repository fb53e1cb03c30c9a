package session

import (
	"context"

	"TUI-UI-Converter/resolve"
	"TUI-UI-Converter/types"
)

// ConfirmFunc asks whether output may be overwritten. true means ok.
type ConfirmFunc func(prompt, output string) bool

// Convert drives one request to its end synchronously, handing every log
// line to sink as soon as it is produced. A nil confirm declines overwrites.
func (s *Session) Convert(ctx context.Context, raw resolve.PathInput, confirm ConfirmFunc, sink func(string)) (Step, error) {
	emit := func(step Step) {
		if sink == nil {
			return
		}
		for _, line := range step.Lines {
			sink(line)
		}
	}

	step, err := s.Submit(raw)
	emit(step)
	if err != nil {
		return step, err
	}

	if step.State == types.StateAwaitingConfirmation {
		ok := confirm != nil && confirm(step.Prompt, step.Result.Output)
		step, err = s.Confirm(ok)
		emit(step)
		if err != nil {
			return step, err
		}
	}

	if step.State != types.StateRunning {
		return step, nil
	}

	step, err = s.Execute(ctx)
	emit(step)
	return step, err
}
