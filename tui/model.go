package tui

import (
	"context"
	"fmt"

	"TUI-UI-Converter/config"
	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/resolve"
	"TUI-UI-Converter/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"
)

// Compiler is what the TUI needs from convert.Runner.
type Compiler interface {
	session.Runner
	Probe(ctx context.Context, minVersion string) (convert.ToolInfo, error)
}

// Options configures InitialModel.
type Options struct {
	Version string
	Input   string // prefilled input path
	Output  string // prefilled output path
	Logger  *zap.Logger

	// FileConfig is the config as read from disk, before environment and
	// flag overrides. Saves start from it so overrides stay transient. nil
	// means the config passed to InitialModel.
	FileConfig *config.Config
	// SaveConfig persists settings. Defaults to config.SaveConfig.
	SaveConfig func(config.Config) error
	// NewCompiler builds the compiler for a config. Defaults to convert.NewRunner.
	NewCompiler func(cfg config.Config, logger *zap.Logger) (Compiler, error)
}

// Model represents the state of the TUI application.
type Model struct {
	// Core data
	config     config.Config // effective settings
	fileConfig config.Config // what saves are written onto
	session    *session.Session
	compiler   Compiler
	logger     *zap.Logger
	version    string

	saveConfig  func(config.Config) error
	newCompiler func(cfg config.Config, logger *zap.Logger) (Compiler, error)

	// Main view state
	inputs          []textinput.Model
	focusIndex      int
	completions     []string
	completionIndex int
	logLines        []string
	logView         viewport.Model
	spinner         spinner.Model
	running         bool
	pendingOutput   string // output awaiting overwrite confirmation
	warning         string
	lastStep        *session.Step
	lastOutputSize  int64
	lastOutputDir   string

	// Compiler probe
	toolInfo  *convert.ToolInfo
	toolErr   error
	probeDone bool

	// Settings state
	settingsInputs []textinput.Model
	settingsFocus  int
	settingsErr    error

	err            error
	currentView    viewState
	terminalWidth  int
	terminalHeight int
}

func defaultCompiler(cfg config.Config, logger *zap.Logger) (Compiler, error) {
	return convert.NewRunner(cfg.ToolCommand, cfg.Timeout(), logger)
}

// InitialModel creates the initial state of the TUI model.
func InitialModel(cfg config.Config, opts Options) (*Model, error) {
	m := &Model{
		config:      cfg,
		fileConfig:  cfg,
		logger:      opts.Logger,
		version:     opts.Version,
		saveConfig:  opts.SaveConfig,
		newCompiler: opts.NewCompiler,
		currentView: viewMain,
	}
	if opts.FileConfig != nil {
		m.fileConfig = *opts.FileConfig
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.saveConfig == nil {
		m.saveConfig = config.SaveConfig
	}
	if m.newCompiler == nil {
		m.newCompiler = defaultCompiler
	}
	if err := m.rebuildSession(cfg); err != nil {
		return nil, err
	}

	m.inputs = newPathInputs(opts.Input, opts.Output, cfg.Extension())
	m.settingsInputs = newSettingsInputs(cfg)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = keyStyle

	m.logView = viewport.New(80, minLogHeight)
	m.terminalWidth = 80
	m.terminalHeight = 24
	return m, nil
}

// rebuildSession replaces the compiler and session for cfg. It refuses while
// a conversion is running.
func (m *Model) rebuildSession(cfg config.Config) error {
	if m.running {
		return session.ErrBusy
	}
	c, err := m.newCompiler(cfg, m.logger)
	if err != nil {
		return fmt.Errorf("failed to set up compiler: %w", err)
	}
	m.compiler = c
	m.session = session.New(resolve.New(cfg.Extension()), c, m.logger)
	m.config = cfg
	return nil
}

func newPathInputs(input, output, ext string) []textinput.Model {
	in := textinput.New()
	in.Placeholder = "path/to/form.ui"
	in.CharLimit = maxInputLength
	in.SetValue(input)
	in.Focus()

	out := textinput.New()
	out.Placeholder = fmt.Sprintf("leave empty for <input>.%s", ext)
	out.CharLimit = maxInputLength
	out.SetValue(output)

	return []textinput.Model{in, out}
}

func newSettingsInputs(cfg config.Config) []textinput.Model {
	inputs := make([]textinput.Model, 4)

	inputs[settingTool] = textinput.New()
	inputs[settingTool].Placeholder = "pyuic5"
	inputs[settingTool].CharLimit = 256
	inputs[settingTool].SetValue(cfg.ToolCommand)

	inputs[settingExtension] = textinput.New()
	inputs[settingExtension].Placeholder = "py"
	inputs[settingExtension].CharLimit = 16
	inputs[settingExtension].SetValue(cfg.Extension())

	inputs[settingTimeout] = textinput.New()
	inputs[settingTimeout].Placeholder = "5"
	inputs[settingTimeout].CharLimit = 4
	inputs[settingTimeout].SetValue(fmt.Sprintf("%d", cfg.TimeoutSeconds))

	inputs[settingMinVersion] = textinput.New()
	inputs[settingMinVersion].Placeholder = "e.g. 5.15"
	inputs[settingMinVersion].CharLimit = 32
	inputs[settingMinVersion].SetValue(cfg.MinToolVersion)

	inputs[settingTool].Focus()
	return inputs
}
