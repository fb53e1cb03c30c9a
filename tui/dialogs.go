package tui

import (
	"fmt"
	"strings"

	"TUI-UI-Converter/session"

	lp "github.com/charmbracelet/lipgloss"
)

// renderConfirmOverwriteDialog asks before replacing an existing output file.
func (m *Model) renderConfirmOverwriteDialog() string {
	var content strings.Builder

	title, question, _ := strings.Cut(session.PromptOverwrite, "\n")
	content.WriteString(lp.NewStyle().Bold(true).Foreground(lp.Color(colorWarning)).Render(title) + "\n\n")
	content.WriteString(question + "\n\n")
	content.WriteString(faintStyle.Render(m.pendingOutput) + "\n\n")

	content.WriteString("Press Enter to overwrite, Esc to cancel")
	return m.renderDialogBox(content.String(), confirmDialogWidth)
}

// renderWarningDialog shows why the last run did not produce a file.
func (m *Model) renderWarningDialog() string {
	var content strings.Builder
	content.WriteString(lp.NewStyle().Bold(true).Foreground(lp.Color(colorError)).Render("Warning!") + "\n\n")
	content.WriteString(errorStyle.Render(m.warning) + "\n\n")
	content.WriteString("Press Enter or Esc to close")
	return m.renderDialogBox(content.String(), warningDialogWidth)
}

// renderAboutDialog shows the program name and version.
func (m *Model) renderAboutDialog() string {
	var content strings.Builder
	content.WriteString(lp.NewStyle().Bold(true).Render("About") + "\n\n")
	content.WriteString(fmt.Sprintf("%s - Convert Qt Designer UI files to %s source\n", appTitle, strings.ToUpper(m.config.Extension())))
	content.WriteString(fmt.Sprintf("Version: %s\n\n", m.version))
	content.WriteString("Press Enter or Esc to close")
	return m.renderDialogBox(content.String(), aboutDialogWidth)
}

// renderNotesDialog shows the usage notes.
func (m *Model) renderNotesDialog() string {
	var content strings.Builder
	content.WriteString(lp.NewStyle().Bold(true).Render("Notes") + "\n\n")
	content.WriteString(lp.NewStyle().Align(lp.Left).Render(notesText) + "\n\n")
	content.WriteString("Press Enter or Esc to close")
	return m.renderDialogBox(content.String(), notesDialogWidth)
}

// renderDialogBox creates a styled dialog box with the given content
func (m *Model) renderDialogBox(content string, width int) string {
	if m.terminalWidth > 0 && width > m.terminalWidth-2 {
		width = m.terminalWidth - 2
	}
	boxStyle := lp.NewStyle().
		Border(lp.NormalBorder()).
		BorderForeground(lp.Color(colorInfo)).
		Padding(1, 2).
		Width(width).
		Align(lp.Center)

	return boxStyle.Render(content)
}
