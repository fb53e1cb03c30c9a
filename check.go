package main

import (
	"fmt"
	"strings"

	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/logging"

	"github.com/spf13/cobra"
)

// newCheckCmd builds the `check` sub-command, which reports the compiler
// version and whether it meets min_tool_version.
func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Checks that the configured UI compiler can be found.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			cfg := loaded.effective
			logger, err := logging.New(cfg.LogLevel, "")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			runner, err := convert.NewRunner(cfg.ToolCommand, cfg.Timeout(), logger)
			if err != nil {
				return err
			}
			info, err := runner.Probe(cmd.Context(), cfg.MinToolVersion)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Compiler: %s\n", info.Path)
			fmt.Fprintf(out, "Command:  %s\n", strings.Join(runner.Command(), " "))
			fmt.Fprintf(out, "Timeout:  %s\n", runner.Timeout())
			fmt.Fprintf(out, "Reports:  %s\n", info.Banner)
			if info.Version != nil {
				fmt.Fprintf(out, "Version:  %s\n", info.Version)
			}
			if !info.Supported {
				return fmt.Errorf("compiler %s is older than the minimum version %s", info, cfg.MinToolVersion)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}
