package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"TUI-UI-Converter/config"
	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/local"
	"TUI-UI-Converter/resolve"
	"TUI-UI-Converter/session"
	"TUI-UI-Converter/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// updateInputs forwards msg to the focused text input.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return cmd
}

// updateSettingsInputs forwards msg to the focused settings input.
func (m *Model) updateSettingsInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.settingsInputs[m.settingsFocus], cmd = m.settingsInputs[m.settingsFocus].Update(msg)
	return cmd
}

// setFocus moves focus to the input at index and blurs the rest.
func setFocus(inputs []textinput.Model, index int) {
	for i := range inputs {
		if i == index {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

// handleConvert starts a request from the two path inputs. A trigger while a
// request is in flight only adds the busy line to the log.
func (m *Model) handleConvert() (tea.Model, tea.Cmd) {
	raw := resolve.PathInput{
		RawInput:  m.inputs[fieldInput].Value(),
		RawOutput: m.inputs[fieldOutput].Value(),
	}
	step, err := m.session.Submit(raw)
	if errors.Is(err, session.ErrBusy) {
		m.appendLog(step.Lines...)
		return m, nil
	}
	if err != nil {
		m.err = err
		return m, nil
	}

	m.clearLog()
	m.appendLog(step.Lines...)
	m.completions = nil

	switch step.State {
	case types.StateAwaitingConfirmation:
		m.pendingOutput = step.Result.Output
		m.currentView = viewConfirmOverwrite
		return m, nil
	case types.StateRunning:
		return m, m.startConversion()
	}
	return m, nil
}

// handleConfirm answers the overwrite dialog.
func (m *Model) handleConfirm(ok bool) (tea.Model, tea.Cmd) {
	m.currentView = viewMain
	m.pendingOutput = ""

	step, err := m.session.Confirm(ok)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.appendLog(step.Lines...)
	if step.State == types.StateRunning {
		return m, m.startConversion()
	}
	return m, nil
}

// startConversion runs the compiler off the update loop and reports back
// with conversionDoneMsg.
func (m *Model) startConversion() tea.Cmd {
	m.running = true
	s := m.session
	run := func() tea.Msg {
		step, err := s.Execute(context.Background())
		return conversionDoneMsg{step: step, err: err}
	}
	return tea.Batch(m.spinner.Tick, run)
}

// handleConversionDone records the outcome and raises the warning dialog
// when the run failed.
func (m *Model) handleConversionDone(msg conversionDoneMsg) (tea.Model, tea.Cmd) {
	m.running = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	step := msg.step
	m.lastStep = &step
	m.appendLog(step.Lines...)

	if step.Warning != "" {
		m.warning = step.Warning
		m.currentView = viewWarning
		return m, nil
	}

	if step.Outcome == nil || step.Outcome.Kind != convert.Success {
		return m, nil
	}
	m.lastOutputDir = filepath.Dir(step.Outcome.Output)
	m.lastOutputSize = 0
	if info, err := os.Stat(step.Outcome.Output); err == nil {
		m.lastOutputSize = info.Size()
	}

	inputDir := step.Result.Dir
	if inputDir == "" || inputDir == m.fileConfig.LastInputDir {
		return m, nil
	}
	m.config.LastInputDir = inputDir
	m.fileConfig.LastInputDir = inputDir
	return m, m.saveConfigCmd(m.fileConfig)
}

// saveConfigCmd persists cfg in the background.
func (m *Model) saveConfigCmd(cfg config.Config) tea.Cmd {
	save := m.saveConfig
	logger := m.logger
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			logger.Warn("Failed to save config", zap.Error(err))
			return errMsg{err}
		}
		return nil
	}
}

// probeCmd asks the compiler for its version.
func (m *Model) probeCmd() tea.Cmd {
	c := m.compiler
	minVersion := m.config.MinToolVersion
	return func() tea.Msg {
		info, err := c.Probe(context.Background(), minVersion)
		return probeDoneMsg{info: info, err: err}
	}
}

func (m *Model) handleProbeDone(msg probeDoneMsg) (tea.Model, tea.Cmd) {
	m.probeDone = true
	m.toolErr = msg.err
	m.toolInfo = nil
	if msg.err == nil {
		info := msg.info
		m.toolInfo = &info
		if !info.Supported {
			m.logger.Warn("Compiler below minimum version",
				zap.String("tool", info.String()),
				zap.String("min_version", m.config.MinToolVersion),
			)
		}
	} else {
		m.logger.Warn("Compiler probe failed", zap.Error(msg.err))
	}
	return m, nil
}

// handleOpenOutputDir opens the directory of the last converted file.
func (m *Model) handleOpenOutputDir() (tea.Model, tea.Cmd) {
	if m.lastOutputDir == "" {
		m.appendLog("Nothing converted yet.")
		return m, nil
	}
	return m, local.OpenDirCmd(m.lastOutputDir)
}

func (m *Model) handleDirOpened(msg local.DirOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("Failed to open directory", zap.String("dir", msg.Dir), zap.Error(msg.Err))
		m.appendLog(msg.Err.Error())
	}
	return m, nil
}

// handleComplete cycles through path completions for the focused input.
func (m *Model) handleComplete() (tea.Model, tea.Cmd) {
	if len(m.completions) == 0 {
		value := m.inputs[m.focusIndex].Value()
		exts := []string{"ui"}
		if m.focusIndex == fieldOutput {
			exts = []string{m.config.Extension()}
			if value == "" {
				value = dirOf(m.inputs[fieldInput].Value())
			}
		} else if value == "" && m.config.LastInputDir != "" {
			value = m.config.LastInputDir + string(filepath.Separator)
		}
		matches, err := PathCompletions(value, exts)
		if err != nil || len(matches) == 0 {
			return m, nil
		}
		m.completions = matches
		m.completionIndex = 0
	}
	m.inputs[m.focusIndex].SetValue(m.completions[m.completionIndex])
	m.inputs[m.focusIndex].CursorEnd()
	m.completionIndex = (m.completionIndex + 1) % len(m.completions)
	if len(m.completions) == 1 {
		// A single match is final; the next Tab completes inside it.
		m.completions = nil
	}
	return m, nil
}

// dirOf returns the directory part of a raw input path with a trailing
// separator, or "" when it has none.
func dirOf(p string) string {
	i := strings.LastIndexAny(p, `/\`)
	if i < 0 {
		return ""
	}
	return p[:i+1]
}

// handleShowSettings switches to the settings page with the current values.
func (m *Model) handleShowSettings() (tea.Model, tea.Cmd) {
	m.settingsInputs = newSettingsInputs(m.config)
	m.settingsFocus = settingTool
	m.settingsErr = nil
	m.currentView = viewSettings
	return m, textinput.Blink
}

// saveSettings validates the settings page, rebuilds the compiler and
// persists the edited fields. Other saved values come from the file, not
// from overrides in effect.
func saveSettings(m *Model) (tea.Model, tea.Cmd) {
	cfg, err := m.settingsConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err == nil {
		err = m.rebuildSession(cfg)
	}
	if err != nil {
		m.settingsErr = err
		return m, nil
	}
	if err := m.saveConfig(withSettings(m.fileConfig, cfg)); err != nil {
		m.settingsErr = fmt.Errorf("failed to save config: %w", err)
		return m, nil
	}
	m.fileConfig = withSettings(m.fileConfig, cfg)

	m.logger.Info("Settings saved",
		zap.String("tool", cfg.ToolCommand),
		zap.String("extension", cfg.Extension()),
		zap.Int("timeout_seconds", cfg.TimeoutSeconds),
	)
	m.settingsErr = nil
	m.currentView = viewMain
	m.inputs[fieldOutput].Placeholder = fmt.Sprintf("leave empty for <input>.%s", cfg.Extension())
	m.probeDone = false
	return m, m.probeCmd()
}

// withSettings copies the fields the settings page edits from src onto dst.
func withSettings(dst, src config.Config) config.Config {
	dst.ToolCommand = src.ToolCommand
	dst.TargetExtension = src.TargetExtension
	dst.TimeoutSeconds = src.TimeoutSeconds
	dst.MinToolVersion = src.MinToolVersion
	return dst
}

// settingsConfig reads the settings inputs into a copy of the current config.
func (m *Model) settingsConfig() (config.Config, error) {
	cfg := m.config
	cfg.ToolCommand = strings.TrimSpace(m.settingsInputs[settingTool].Value())
	cfg.TargetExtension = strings.TrimPrefix(strings.TrimSpace(m.settingsInputs[settingExtension].Value()), ".")
	cfg.MinToolVersion = strings.TrimSpace(m.settingsInputs[settingMinVersion].Value())

	timeout := strings.TrimSpace(m.settingsInputs[settingTimeout].Value())
	seconds, err := strconv.Atoi(timeout)
	if err != nil {
		return cfg, fmt.Errorf("timeout must be a whole number of seconds, got '%s'", timeout)
	}
	cfg.TimeoutSeconds = seconds
	return cfg, nil
}

// appendLog adds lines to the log panel and keeps the newest in view.
func (m *Model) appendLog(lines ...string) {
	if len(lines) == 0 {
		return
	}
	m.logLines = append(m.logLines, lines...)
	m.logView.SetContent(m.renderLogContent())
	m.logView.GotoBottom()
}

// clearLog empties the log panel at the start of a request.
func (m *Model) clearLog() {
	m.logLines = nil
	m.err = nil
	m.logView.SetContent("")
	m.logView.GotoTop()
}
