package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/util"

	lp "github.com/charmbracelet/lipgloss"
)

// renderMainHeader renders the title bar and the compiler line.
func (m *Model) renderMainHeader() string {
	var b strings.Builder
	b.WriteString(headerStyle.Width(m.terminalWidth).AlignHorizontal(lp.Center).Render(appTitle))
	b.WriteString("\n")
	b.WriteString(m.renderToolLine())
	b.WriteString("\n")
	return b.String()
}

// renderSettingsHeader renders the header for the settings view
func (m *Model) renderSettingsHeader() string {
	var b strings.Builder
	b.WriteString(headerStyle.Width(m.terminalWidth).AlignHorizontal(lp.Center).Render(appTitle + " - Settings"))
	b.WriteString("\n")
	return b.String()
}

// renderToolLine describes the compiler found by the probe.
func (m *Model) renderToolLine() string {
	prefix := faintStyle.Render("Compiler: ")
	switch {
	case !m.probeDone:
		return prefix + faintStyle.Render("checking "+m.config.ToolCommand+"...")
	case m.toolErr != nil:
		return prefix + errorStyle.Render(m.toolErr.Error())
	case m.toolInfo == nil:
		return prefix + faintStyle.Render("unknown")
	}
	return prefix + toolSummary(*m.toolInfo, m.config.MinToolVersion)
}

func toolSummary(info convert.ToolInfo, minVersion string) string {
	if !info.Supported {
		return warnStyle.Render(fmt.Sprintf("%s (below minimum %s)", info.String(), minVersion))
	}
	return okStyle.Render(info.String())
}

// renderLastResult summarises the last finished run.
func (m *Model) renderLastResult() string {
	if m.lastStep == nil || m.lastStep.Outcome == nil {
		return ""
	}
	outcome := m.lastStep.Outcome
	name := filepath.Base(outcome.Output)
	if m.lastStep.Warning != "" {
		return errorStyle.Render(fmt.Sprintf("Last run: %s · %s · %s", name, outcome.Kind, util.FormatElapsed(outcome.Elapsed)))
	}
	return okStyle.Render(fmt.Sprintf("Last output: %s · %s · %s",
		name, util.FormatSize(m.lastOutputSize), util.FormatElapsed(outcome.Elapsed)))
}
