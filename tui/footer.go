package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	lp "github.com/charmbracelet/lipgloss"
)

// renderHelp joins bindings as "key Description" pairs.
func renderHelp(bindings []key.Binding) string {
	sepStyle := lp.NewStyle().Foreground(lp.Color(colorBackground))
	separator := sepStyle.Render(" · ")

	var commands []string
	for _, b := range bindings {
		h := b.Help()
		commands = append(commands, fmt.Sprintf("%s %s", keyStyle.Render(h.Key), h.Desc))
	}
	return strings.Join(commands, separator)
}

// renderMainFooter renders the footer for the converter form
func (m *Model) renderMainFooter() string {
	return footerStyle.Width(m.terminalWidth).Render(renderHelp(keys.mainHelp()))
}

// renderSettingsFooter renders the footer for the settings view
func (m *Model) renderSettingsFooter() string {
	return footerStyle.Width(m.terminalWidth).Render(renderHelp(keys.settingsHelp()))
}
