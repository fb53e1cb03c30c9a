package tui

import (
	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/session"
)

// probeDoneMsg carries the compiler version probe result.
type probeDoneMsg struct {
	info convert.ToolInfo
	err  error
}

// conversionDoneMsg is sent once the compiler run returns.
type conversionDoneMsg struct {
	step session.Step
	err  error
}

type errMsg struct{ err error }

// Implement the error interface for errMsg
func (e errMsg) Error() string { return e.err.Error() }
