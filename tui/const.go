package tui

import (
	lp "github.com/charmbracelet/lipgloss"
)

// Constants for UI styling and configuration
const (
	// Color constants
	colorSuccess    = "10"  // Green for success states
	colorWarning    = "11"  // Yellow for warnings
	colorInfo       = "12"  // Blue for info
	colorError      = "9"   // Red for errors
	colorBackground = "240" // Gray background
	colorForeground = "255" // White foreground

	// Dialog size constants
	confirmDialogWidth = 60
	warningDialogWidth = 64
	aboutDialogWidth   = 56
	notesDialogWidth   = 70

	// Layout
	headerHeight   = 4
	formHeight     = 6
	footerHeight   = 2
	minLogHeight   = 3
	maxInputLength = 1024

	appTitle = "TUI UI Converter"
)

// View states
type viewState int

const (
	viewMain viewState = iota
	viewSettings
	viewConfirmOverwrite // Output exists; waiting for ok/cancel
	viewWarning          // Modal warning after a failed run
	viewAbout
	viewNotes
)

// Input field indexes on the main view
const (
	fieldInput = iota
	fieldOutput
)

// Settings field indexes, matching the order in newSettingsInputs
const (
	settingTool = iota
	settingExtension
	settingTimeout
	settingMinVersion
)

// Styles using lipgloss
var (
	headerStyle = lp.NewStyle().Bold(true).Padding(0, 1).Foreground(lp.Color(colorForeground)).Background(lp.Color("236"))
	footerStyle = lp.NewStyle().Padding(0, 1).Foreground(lp.Color(colorForeground))
	labelStyle  = lp.NewStyle().Bold(true)
	faintStyle  = lp.NewStyle().Faint(true)
	keyStyle    = lp.NewStyle().Foreground(lp.Color(colorInfo))
	errorStyle  = lp.NewStyle().Foreground(lp.Color(colorError))
	okStyle     = lp.NewStyle().Foreground(lp.Color(colorSuccess))
	warnStyle   = lp.NewStyle().Foreground(lp.Color(colorWarning))
	logBoxStyle = lp.NewStyle().Border(lp.RoundedBorder()).BorderForeground(lp.Color(colorBackground)).Padding(0, 1)
)

const notesText = `1. If you do not enter an output file, one is created next to the input file with the same name and the target extension.

2. A relative output path is resolved against the input file's directory.

3. An output file without the target extension gets it appended: with the default target, "out.txt" becomes "out.txt.py".

4. Existing output files are never overwritten without confirmation.

5. Success is judged only by the output file existing once the compiler finishes or times out.`
