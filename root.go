package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TUI-UI-Converter/config"
	"TUI-UI-Converter/logging"
	"TUI-UI-Converter/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Set during build time using -ldflags
var version = "dev"

// rootOptions holds the flags that are not configuration keys.
type rootOptions struct {
	cfgFile string
	verbose bool
	input   string
	output  string
	noTUI   bool
	yes     bool
	force   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ui-converter [-i form.ui] [-o form.py]",
		Short: "Converts Qt Designer .ui files to source files.",
		Long: `ui-converter runs a UI compiler (pyuic5 by default) as
'<tool> -x -o <output> <input>' and reports whether the output file appeared.

In a terminal it opens an interactive form; with --no-tui, or when stdin is not
a terminal, it converts the -i/-o pair once and exits 0 on success.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			loaded, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if opts.noTUI || !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return runHeadless(ctx, cmd, loaded.effective, opts)
			}
			return runTUI(loaded, opts)
		},
	}
	cmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")

	// Persistent flags
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Configuration file path (default is $XDG_CONFIG_HOME/tui-ui-converter/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	cmd.PersistentFlags().String("tool", "", "UI compiler command, e.g. 'pyuic5' or 'python -m PyQt5.uic.pyuic'")
	cmd.PersistentFlags().String("ext", "", "Target file extension without the dot")
	cmd.PersistentFlags().Int("timeout", 0, "Seconds to wait for the compiler")
	cmd.PersistentFlags().String("min-tool-version", "", "Warn when the compiler is older than this version")
	cmd.PersistentFlags().String("log-file", "", "Log file used while the TUI runs")
	cmd.PersistentFlags().String("log-level", "", `Log level ("debug", "info", "warn", "error")`)

	// Local flags
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input .ui file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: input name with the target extension)")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "Convert once without the interactive UI even in a terminal")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite an existing output file without asking")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Alias for --yes")

	cmd.AddCommand(newCheckCmd(opts))
	return cmd
}

// loadedConfig is the effective config plus what the file alone says.
type loadedConfig struct {
	effective config.Config // file, then environment, then flags
	file      config.Config // saves are written onto this
	path      string
}

// loadConfig reads the config file and layers environment variables and
// flags over it.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (loadedConfig, error) {
	var (
		loaded loadedConfig
		err    error
	)
	if opts.cfgFile != "" {
		loaded.path = opts.cfgFile
		loaded.file, err = config.LoadConfigFrom(opts.cfgFile)
	} else {
		if loaded.path, err = config.GetConfigPath(); err != nil {
			return loadedConfig{}, err
		}
		loaded.file, err = config.LoadConfig()
	}
	if err != nil {
		return loadedConfig{}, err
	}

	loaded.effective, err = config.ApplyOverrides(loaded.file, cmd.Flags())
	if err != nil {
		return loadedConfig{}, err
	}
	if opts.verbose {
		loaded.effective.LogLevel = "debug"
	}
	return loaded, nil
}

// runTUI starts the interactive form. Logs go to a file so they never
// reach the screen.
func runTUI(loaded loadedConfig, opts *rootOptions) error {
	cfg := loaded.effective
	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	m, err := tui.InitialModel(cfg, tui.Options{
		Version:    version,
		Input:      opts.input,
		Output:     opts.output,
		Logger:     logger,
		FileConfig: &loaded.file,
		SaveConfig: func(c config.Config) error {
			return config.SaveConfigTo(loaded.path, c)
		},
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
