package tui

import (
	"TUI-UI-Converter/local"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the cursor blink and the compiler probe.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.probeCmd())
}

// Update updates the model based on messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle key messages first, routing based on the current view
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.Quit) {
			return m, tea.Quit
		}
		switch m.currentView {
		case viewSettings:
			return m.updateSettingsView(keyMsg)
		case viewConfirmOverwrite:
			return m.updateConfirmView(keyMsg)
		case viewWarning, viewAbout, viewNotes:
			return m.updateDialogView(keyMsg)
		default:
			return m.updateMainView(keyMsg)
		}
	}

	// Handle non-key messages
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UpdateWindowSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case probeDoneMsg:
		return m.handleProbeDone(msg)

	case conversionDoneMsg:
		return m.handleConversionDone(msg)

	case local.DirOpenedMsg:
		return m.handleDirOpened(msg)

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	// Cursor blink and the like
	if m.currentView == viewSettings {
		return m, m.updateSettingsInputs(msg)
	}
	return m, m.updateInputs(msg)
}

// updateMainView handles keys on the converter form.
func (m *Model) updateMainView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Convert), key.Matches(msg, keys.Retry):
		return m.handleConvert()

	case key.Matches(msg, keys.Complete):
		return m.handleComplete()

	case key.Matches(msg, keys.PrevField), key.Matches(msg, keys.NextField):
		m.completions = nil
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		setFocus(m.inputs, m.focusIndex)
		return m, textinput.Blink

	case key.Matches(msg, keys.OpenDir):
		return m.handleOpenOutputDir()

	case key.Matches(msg, keys.Settings):
		return m.handleShowSettings()

	case key.Matches(msg, keys.About):
		m.currentView = viewAbout
		return m, nil

	case key.Matches(msg, keys.Notes):
		m.currentView = viewNotes
		return m, nil

	case key.Matches(msg, keys.ScrollUp):
		m.logView.HalfViewUp()
		return m, nil

	case key.Matches(msg, keys.ScrollDown):
		m.logView.HalfViewDown()
		return m, nil
	}

	// Anything else edits the focused path
	m.completions = nil
	return m, m.updateInputs(msg)
}

// updateConfirmView handles the overwrite dialog.
func (m *Model) updateConfirmView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Accept):
		return m.handleConfirm(true)
	case key.Matches(msg, keys.Cancel):
		return m.handleConfirm(false)
	}
	return m, nil
}

// updateDialogView closes the warning, about and notes dialogs.
func (m *Model) updateDialogView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Accept) || key.Matches(msg, keys.Cancel) {
		m.warning = ""
		m.currentView = viewMain
	}
	return m, nil
}

// updateSettingsView handles keys on the settings page.
func (m *Model) updateSettingsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.settingsErr = nil
		m.currentView = viewMain
		return m, nil
	case key.Matches(msg, keys.Save):
		return saveSettings(m)
	case key.Matches(msg, keys.PrevField):
		m.settingsFocus = (m.settingsFocus - 1 + len(m.settingsInputs)) % len(m.settingsInputs)
		setFocus(m.settingsInputs, m.settingsFocus)
		return m, textinput.Blink
	case key.Matches(msg, keys.NextField):
		m.settingsFocus = (m.settingsFocus + 1) % len(m.settingsInputs)
		setFocus(m.settingsInputs, m.settingsFocus)
		return m, textinput.Blink
	}
	return m, m.updateSettingsInputs(msg)
}

// UpdateWindowSize resizes the inputs and the log panel.
func (m *Model) UpdateWindowSize(width, height int) {
	m.terminalWidth = width
	m.terminalHeight = height

	inputWidth := width - 20
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
	for i := range m.settingsInputs {
		m.settingsInputs[i].Width = inputWidth
	}

	logHeight := height - headerHeight - formHeight - footerHeight - 4
	if logHeight < minLogHeight {
		logHeight = minLogHeight
	}
	m.logView.Width = width - 4
	m.logView.Height = logHeight
	m.logView.SetContent(m.renderLogContent())
}
