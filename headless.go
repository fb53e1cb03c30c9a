package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"TUI-UI-Converter/config"
	"TUI-UI-Converter/convert"
	"TUI-UI-Converter/logging"
	"TUI-UI-Converter/resolve"
	"TUI-UI-Converter/session"
	"TUI-UI-Converter/types"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errConversionFailed makes the process exit 1 after the log lines already
// said why.
var errConversionFailed = errors.New("conversion failed")

// runHeadless converts the -i/-o pair once, printing log lines to stdout as
// they are produced.
func runHeadless(ctx context.Context, cmd *cobra.Command, cfg config.Config, opts *rootOptions) error {
	logger, err := logging.New(cfg.LogLevel, "")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runner, err := convert.NewRunner(cfg.ToolCommand, cfg.Timeout(), logger)
	if err != nil {
		return err
	}
	sess := session.New(resolve.New(cfg.Extension()), runner, logger)

	out := cmd.OutOrStdout()
	confirm := func(prompt, output string) bool {
		if opts.yes || opts.force {
			return true
		}
		return askOverwrite(cmd.InOrStdin(), out, prompt, output)
	}

	step, err := sess.Convert(ctx, resolve.PathInput{RawInput: opts.input, RawOutput: opts.output}, confirm, func(line string) {
		fmt.Fprintln(out, line)
	})
	if err != nil {
		return err
	}

	if step.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning! %s\n", strings.ReplaceAll(step.Warning, "\n", " "))
	}

	switch {
	case step.State == types.StateSucceeded:
		return nil
	case !step.State.Terminal():
		// Overwrite declined
		logger.Info("Conversion cancelled", zap.String("request_id", step.RequestID))
		return nil
	}
	return errConversionFailed
}

// askOverwrite prints prompt and reads a yes/no answer. Anything but y/yes,
// including end of input, declines.
func askOverwrite(in io.Reader, out io.Writer, prompt, output string) bool {
	fmt.Fprintf(out, "%s\n%s [y/N]: ", prompt, output)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
