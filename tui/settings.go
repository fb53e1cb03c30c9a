package tui

import (
	"strings"

	lp "github.com/charmbracelet/lipgloss"
)

// renderSettingsPage constructs the settings page with a common header, settings content and settings footer.
func (m *Model) renderSettingsPage() string {
	header := m.renderSettingsHeader()

	middleHeight := m.terminalHeight - headerHeight - footerHeight
	if middleHeight < 5 {
		middleHeight = 5
	}

	body := m.renderSettingsContent(middleHeight)
	footer := m.renderSettingsFooter()
	baseView := lp.JoinVertical(lp.Top, header, body, footer)
	return lp.Place(m.terminalWidth, m.terminalHeight, lp.Left, lp.Top, baseView)
}

// renderSettingsContent renders the settings page content
func (m *Model) renderSettingsContent(availableHeight int) string {
	var b strings.Builder

	// Setting labels, matching the order in newSettingsInputs
	settingLabels := []string{
		"Compiler Command:",
		"Target Extension:",
		"Timeout (seconds):",
		"Minimum Compiler Version:",
	}

	settingDescriptions := []string{
		"Run as '<command> -x -o <output> <input>', e.g. 'pyuic5' or 'python -m PyQt5.uic.pyuic'",
		"Appended to output files that lack it, e.g. 'py'",
		"How long to wait for the compiler before checking for the output file",
		"Warn when the compiler reports an older version; leave empty to skip",
	}

	for i := range m.settingsInputs {
		if i >= len(settingLabels) {
			continue
		}
		isFocused := i == m.settingsFocus
		b.WriteString(lp.NewStyle().Bold(isFocused).Render(settingLabels[i]) + "\n")
		b.WriteString(m.settingsInputs[i].View() + "\n")

		descStyle := lp.NewStyle().Faint(true).Italic(true)
		b.WriteString(descStyle.Render(settingDescriptions[i]) + "\n\n")
	}

	if m.settingsErr != nil {
		b.WriteString(errorStyle.Render("Error: "+m.settingsErr.Error()) + "\n")
	}

	return lp.Place(m.terminalWidth, availableHeight, lp.Left, lp.Top, b.String())
}
