package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"TUI-UI-Converter/config"
	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/resolve"
	"TUI-UI-Converter/session"
	"TUI-UI-Converter/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompiler writes the output file when write is set.
type fakeCompiler struct {
	write    bool
	calls    int
	info     convert.ToolInfo
	probeErr error
}

func (f *fakeCompiler) Run(ctx context.Context, dir, input, output string) convert.Outcome {
	f.calls++
	if f.write {
		_ = os.WriteFile(output, []byte("# generated\n"), 0644)
	}
	if _, err := os.Stat(output); err == nil {
		return convert.Outcome{Kind: convert.Success, Output: output}
	}
	return convert.Outcome{Kind: convert.TimedOutOrNoOutputProduced, Output: output}
}

func (f *fakeCompiler) Probe(ctx context.Context, minVersion string) (convert.ToolInfo, error) {
	return f.info, f.probeErr
}

type harness struct {
	m        *Model
	compiler *fakeCompiler
	saved    []config.Config
}

func newHarness(t *testing.T, input, output string) *harness {
	t.Helper()
	return newHarnessWithConfig(t, config.DefaultConfig(), nil, input, output)
}

// newHarnessWithConfig starts the model with an effective config that may
// differ from what the config file holds.
func newHarnessWithConfig(t *testing.T, cfg config.Config, fileCfg *config.Config, input, output string) *harness {
	t.Helper()
	h := &harness{compiler: &fakeCompiler{write: true}}
	m, err := InitialModel(cfg, Options{
		Version:    "1.2.3",
		Input:      input,
		Output:     output,
		Logger:     zap.NewNop(),
		FileConfig: fileCfg,
		SaveConfig: func(cfg config.Config) error {
			h.saved = append(h.saved, cfg)
			return nil
		},
		NewCompiler: func(cfg config.Config, logger *zap.Logger) (Compiler, error) {
			return h.compiler, nil
		},
	})
	require.NoError(t, err)
	h.m = m
	return h
}

func (h *harness) press(t *testing.T, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := h.m.Update(msg)
	return cmd
}

// drain runs cmd, expanding batches, and feeds every message back into the
// model until nothing is left.
func (h *harness) drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		// Spinner ticks would loop forever once fed back
		if _, ok := msg.(conversionDoneMsg); !ok {
			if _, ok := msg.(probeDoneMsg); !ok {
				continue
			}
		}
		_, next := h.m.Update(msg)
		queue = append(queue, next)
	}
}

func writeUI(t *testing.T) (dir, input string) {
	t.Helper()
	dir = t.TempDir()
	input = filepath.Join(dir, "form.ui")
	require.NoError(t, os.WriteFile(input, []byte("<ui/>"), 0644))
	return dir, input
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlA = tea.KeyMsg{Type: tea.KeyCtrlA}
	keyCtrlN = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyCtrlO = tea.KeyMsg{Type: tea.KeyCtrlO}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func TestInitialModel(t *testing.T) {
	h := newHarness(t, "a.ui", "b.py")
	m := h.m

	assert.Equal(t, viewMain, m.currentView)
	assert.Equal(t, "a.ui", m.inputs[fieldInput].Value())
	assert.Equal(t, "b.py", m.inputs[fieldOutput].Value())
	assert.True(t, m.inputs[fieldInput].Focused())
	assert.Len(t, m.settingsInputs, 4)
	assert.Equal(t, types.StateIdle, m.session.State())
	assert.False(t, m.running)
}

func TestInitialModelCompilerError(t *testing.T) {
	_, err := InitialModel(config.DefaultConfig(), Options{
		NewCompiler: func(config.Config, *zap.Logger) (Compiler, error) {
			return nil, errors.New("bad command")
		},
	})
	assert.ErrorContains(t, err, "bad command")
}

func TestInitProbesCompiler(t *testing.T) {
	h := newHarness(t, "", "")
	h.compiler.info = convert.ToolInfo{Path: "/usr/bin/pyuic5", Banner: "pyuic5 5.15.9", Version: convert.ParseVersion("5.15.9"), Supported: true}

	h.drain(h.m.Init())

	require.True(t, h.m.probeDone)
	require.NotNil(t, h.m.toolInfo)
	assert.NoError(t, h.m.toolErr)
	assert.Contains(t, h.m.View(), "/usr/bin/pyuic5 5.15.9")
}

func TestInitProbeFailure(t *testing.T) {
	h := newHarness(t, "", "")
	h.compiler.probeErr = errors.New(`compiler "pyuic5" not found`)

	h.drain(h.m.Init())

	assert.True(t, h.m.probeDone)
	assert.Nil(t, h.m.toolInfo)
	assert.Contains(t, h.m.View(), "not found")
}

func TestConvertSucceeds(t *testing.T) {
	dir, input := writeUI(t)
	h := newHarness(t, input, "")

	cmd := h.press(t, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, h.m.running)
	assert.Equal(t, []string{session.LineInputValid, session.LineConverting}, h.m.logLines)

	h.drain(cmd)

	assert.False(t, h.m.running)
	assert.Equal(t, 1, h.compiler.calls)
	assert.Equal(t, []string{
		session.LineInputValid,
		session.LineConverting,
		session.LineComplete,
		"See " + dir + string(filepath.Separator) + " for converted file.",
	}, h.m.logLines)
	assert.FileExists(t, filepath.Join(dir, "form.py"))
	assert.Equal(t, dir, h.m.lastOutputDir)
	assert.Equal(t, int64(len("# generated\n")), h.m.lastOutputSize)
	assert.Equal(t, types.StateSucceeded, h.m.session.State())

	require.Len(t, h.saved, 1)
	assert.Equal(t, dir, h.saved[0].LastInputDir)
	assert.Contains(t, h.m.View(), "Last output: form.py")
}

func TestConvertWithCtrlR(t *testing.T) {
	_, input := writeUI(t)
	h := newHarness(t, input, "")

	h.drain(h.press(t, keyCtrlR))

	assert.Equal(t, 1, h.compiler.calls)
}

func TestConvertRejected(t *testing.T) {
	dir, input := writeUI(t)

	testCases := []struct {
		name   string
		input  string
		output string
		want   []string
	}{
		{"empty input", "", "", []string{resolve.ReasonEmptyInput}},
		{"missing input dir", filepath.Join(dir, "nope", "form.ui"), "", []string{resolve.ReasonInputDir}},
		{"missing output dir", input, filepath.Join(dir, "nope", "out.py"), []string{
			session.LineInputValid,
			"Output file path (" + filepath.ToSlash(filepath.Join(dir, "nope")) + ") is not valid.  Please try again.",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, tc.input, tc.output)

			cmd := h.press(t, keyEnter)

			assert.Nil(t, cmd)
			assert.False(t, h.m.running)
			assert.Equal(t, tc.want, h.m.logLines)
			assert.Equal(t, types.StateRejected, h.m.session.State())
			assert.Zero(t, h.compiler.calls)
		})
	}
}

func TestLogClearedPerRequest(t *testing.T) {
	_, input := writeUI(t)
	h := newHarness(t, "", "")

	h.press(t, keyEnter)
	require.Equal(t, []string{resolve.ReasonEmptyInput}, h.m.logLines)

	h.m.inputs[fieldInput].SetValue(input)
	h.drain(h.press(t, keyEnter))

	assert.Equal(t, session.LineInputValid, h.m.logLines[0])
	assert.NotContains(t, h.m.logLines, resolve.ReasonEmptyInput)
}

func TestTriggerWhileRunningIsRejected(t *testing.T) {
	_, input := writeUI(t)
	h := newHarness(t, input, "")

	cmd := h.press(t, keyEnter)
	require.True(t, h.m.running)

	again := h.press(t, keyEnter)

	assert.Nil(t, again)
	assert.Equal(t, []string{session.LineInputValid, session.LineConverting, session.LineBusy}, h.m.logLines)

	h.drain(cmd)
	assert.Equal(t, 1, h.compiler.calls)
}

func TestOverwriteDeclined(t *testing.T) {
	dir, input := writeUI(t)
	existing := filepath.Join(dir, "existing.py")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))
	h := newHarness(t, input, existing)

	cmd := h.press(t, keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, viewConfirmOverwrite, h.m.currentView)
	assert.Equal(t, existing, h.m.pendingOutput)
	assert.Contains(t, h.m.View(), "Selected File Exists!")

	cmd = h.press(t, keyEsc)

	assert.Nil(t, cmd)
	assert.Equal(t, viewMain, h.m.currentView)
	assert.Equal(t, types.StateIdle, h.m.session.State())
	assert.Equal(t, []string{session.LineInputValid}, h.m.logLines)
	assert.Zero(t, h.compiler.calls)
}

func TestOverwriteAccepted(t *testing.T) {
	dir, input := writeUI(t)
	existing := filepath.Join(dir, "existing.py")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))
	h := newHarness(t, input, existing)

	h.press(t, keyEnter)
	cmd := h.press(t, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, h.m.running)

	h.drain(cmd)

	assert.Equal(t, 1, h.compiler.calls)
	assert.Equal(t, viewMain, h.m.currentView)
	assert.Equal(t, []string{
		session.LineInputValid,
		session.LineConverting,
		session.LineComplete,
		"See " + dir + string(filepath.Separator) + " for converted file.",
	}, h.m.logLines)
}

func TestFailedRunShowsWarning(t *testing.T) {
	_, input := writeUI(t)
	h := newHarness(t, input, "")
	h.compiler.write = false

	h.drain(h.press(t, keyEnter))

	assert.Equal(t, viewWarning, h.m.currentView)
	assert.Equal(t, session.WarningNoOutput, h.m.warning)
	assert.Equal(t, session.LineFailed, h.m.logLines[len(h.m.logLines)-1])
	assert.Empty(t, h.saved)

	h.press(t, keyEnter)
	assert.Equal(t, viewMain, h.m.currentView)
	assert.Empty(t, h.m.warning)
}

func TestDialogs(t *testing.T) {
	h := newHarness(t, "", "")

	h.press(t, keyCtrlA)
	assert.Equal(t, viewAbout, h.m.currentView)
	assert.Contains(t, h.m.View(), "Version: 1.2.3")
	h.press(t, keyEsc)
	assert.Equal(t, viewMain, h.m.currentView)

	h.press(t, keyCtrlN)
	assert.Equal(t, viewNotes, h.m.currentView)
	assert.Contains(t, h.m.View(), "Notes")
	h.press(t, keyEnter)
	assert.Equal(t, viewMain, h.m.currentView)
}

func TestOpenOutputDirBeforeAnyRun(t *testing.T) {
	h := newHarness(t, "", "")

	cmd := h.press(t, keyCtrlO)

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"Nothing converted yet."}, h.m.logLines)
}

func TestFocusAndCompletion(t *testing.T) {
	dir, _ := writeUI(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "forms"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	h := newHarness(t, dir+string(filepath.Separator), "")

	h.press(t, keyTab)
	assert.Equal(t, filepath.Join(dir, "forms")+string(filepath.Separator), h.m.inputs[fieldInput].Value())
	h.press(t, keyTab)
	assert.Equal(t, filepath.Join(dir, "form.ui"), h.m.inputs[fieldInput].Value())

	h.press(t, keyDown)
	assert.Equal(t, fieldOutput, h.m.focusIndex)
	assert.True(t, h.m.inputs[fieldOutput].Focused())
	assert.False(t, h.m.inputs[fieldInput].Focused())
}

func TestSettingsSave(t *testing.T) {
	h := newHarness(t, "", "")

	h.press(t, keyCtrlS)
	require.Equal(t, viewSettings, h.m.currentView)

	h.m.settingsInputs[settingTool].SetValue("pyside6-uic")
	h.m.settingsInputs[settingExtension].SetValue(".pyw")
	h.m.settingsInputs[settingTimeout].SetValue("10")
	cmd := h.press(t, keyEnter)

	require.NoError(t, h.m.settingsErr)
	assert.NotNil(t, cmd)
	assert.Equal(t, viewMain, h.m.currentView)
	require.Len(t, h.saved, 1)
	assert.Equal(t, "pyside6-uic", h.saved[0].ToolCommand)
	assert.Equal(t, "pyw", h.saved[0].TargetExtension)
	assert.Equal(t, 10, h.saved[0].TimeoutSeconds)
	assert.Equal(t, "pyw", h.m.config.Extension())
}

// overriddenConfig is what the command line hands over after
// `-v --tool custom-uic --timeout 9` on top of a default config file.
func overriddenConfig() (effective, file config.Config) {
	file = config.DefaultConfig()
	effective = file
	effective.ToolCommand = "custom-uic"
	effective.TimeoutSeconds = 9
	effective.LogLevel = "debug"
	return effective, file
}

func TestConversionSavesOnlyLastInputDir(t *testing.T) {
	dir, input := writeUI(t)
	effective, file := overriddenConfig()
	h := newHarnessWithConfig(t, effective, &file, input, "")

	h.drain(h.press(t, keyEnter))

	require.Len(t, h.saved, 1)
	assert.Equal(t, dir, h.saved[0].LastInputDir)
	assert.Equal(t, "pyuic5", h.saved[0].ToolCommand)
	assert.Equal(t, 5, h.saved[0].TimeoutSeconds)
	assert.Equal(t, "info", h.saved[0].LogLevel)
	assert.Equal(t, "custom-uic", h.m.config.ToolCommand)
}

func TestSettingsSaveKeepsOverridesOutOfFile(t *testing.T) {
	effective, file := overriddenConfig()
	file.LogFile = "/var/log/ui.log"
	h := newHarnessWithConfig(t, effective, &file, "", "")

	h.press(t, keyCtrlS)
	assert.Equal(t, "custom-uic", h.m.settingsInputs[settingTool].Value())
	h.m.settingsInputs[settingTool].SetValue("pyside6-uic")
	h.press(t, keyEnter)

	require.NoError(t, h.m.settingsErr)
	require.Len(t, h.saved, 1)
	assert.Equal(t, "pyside6-uic", h.saved[0].ToolCommand)
	assert.Equal(t, 9, h.saved[0].TimeoutSeconds)
	assert.Equal(t, "info", h.saved[0].LogLevel)
	assert.Equal(t, "/var/log/ui.log", h.saved[0].LogFile)
	assert.Equal(t, "debug", h.m.config.LogLevel)
}

func TestSettingsInvalidTimeout(t *testing.T) {
	h := newHarness(t, "", "")

	h.press(t, keyCtrlS)
	h.m.settingsInputs[settingTimeout].SetValue("soon")
	h.press(t, keyEnter)

	assert.Error(t, h.m.settingsErr)
	assert.Equal(t, viewSettings, h.m.currentView)
	assert.Empty(t, h.saved)
	assert.Contains(t, h.m.View(), "timeout must be a whole number")

	h.press(t, keyEsc)
	assert.Equal(t, viewMain, h.m.currentView)
	assert.Equal(t, 5, h.m.config.TimeoutSeconds)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "", "")

	cmd := h.press(t, keyCtrlC)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowResize(t *testing.T) {
	h := newHarness(t, "", "")

	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, h.m.terminalWidth)
	assert.Equal(t, 116, h.m.logView.Width)
	assert.Equal(t, 40-headerHeight-formHeight-footerHeight-4, h.m.logView.Height)
}
