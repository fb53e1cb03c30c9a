package tui

import (
	"strings"

	lp "github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the current view of the model using a unified layout.
// Dialogs are drawn centered over an otherwise empty screen.
func (m *Model) View() string {
	var dialog string
	switch m.currentView {
	case viewConfirmOverwrite:
		dialog = m.renderConfirmOverwriteDialog()
	case viewWarning:
		dialog = m.renderWarningDialog()
	case viewAbout:
		dialog = m.renderAboutDialog()
	case viewNotes:
		dialog = m.renderNotesDialog()
	case viewSettings:
		return m.renderSettingsPage()
	default:
		return m.renderMainPage()
	}
	return lp.Place(m.terminalWidth, m.terminalHeight, lp.Center, lp.Center, dialog)
}

// renderMainPage constructs the converter form with the log panel below it.
func (m *Model) renderMainPage() string {
	header := m.renderMainHeader()
	form := m.renderForm()
	logPanel := logBoxStyle.Width(m.terminalWidth - 2).Render(m.logView.View())
	status := m.renderStatusLine()
	footer := m.renderMainFooter()

	baseView := lp.JoinVertical(lp.Left, header, form, logPanel, status, footer)
	return lp.Place(m.terminalWidth, m.terminalHeight, lp.Left, lp.Top, baseView)
}

// renderForm renders the two path inputs.
func (m *Model) renderForm() string {
	var b strings.Builder
	labels := []string{"Input file (.ui):", "Output file:"}
	for i, label := range labels {
		style := labelStyle
		if i != m.focusIndex {
			style = style.Bold(false)
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(m.inputs[i].View() + "\n")
	}
	return b.String()
}

// renderStatusLine shows the spinner while running and the last result
// otherwise.
func (m *Model) renderStatusLine() string {
	if m.running {
		return m.spinner.View() + " Converting with " + m.config.ToolCommand + "..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	return m.renderLastResult()
}

// renderLogContent wraps the log lines to the panel width.
func (m *Model) renderLogContent() string {
	width := m.logView.Width - 2
	if width < 10 {
		return strings.Join(m.logLines, "\n")
	}
	wrapped := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		wrapped = append(wrapped, runewidth.Wrap(line, width))
	}
	return strings.Join(wrapped, "\n")
}
