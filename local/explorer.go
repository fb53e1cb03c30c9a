package local

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

// DirOpenedMsg reports the result of OpenDirCmd.
type DirOpenedMsg struct {
	Dir string
	Err error
}

// explorerCommand picks the platform file explorer for dir. lookPath is
// exec.LookPath outside tests.
func explorerCommand(goos string, dir string, lookPath func(string) (string, error)) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("explorer", dir)
	case "darwin":
		return exec.Command("open", dir)
	}
	for _, opener := range []string{"xdg-open", "gnome-open", "kde-open"} {
		if _, err := lookPath(opener); err == nil {
			return exec.Command(opener, dir)
		}
	}
	return exec.Command("xdg-open", dir)
}

// OpenFileExplorer opens the default file explorer to the specified directory.
func OpenFileExplorer(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot open %s: not a directory", dir)
	}

	cmd := explorerCommand(runtime.GOOS, dir, exec.LookPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	detachProcess(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	return cmd.Process.Release()
}

// OpenDirCmd creates a command that opens dir in the file explorer.
func OpenDirCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		return DirOpenedMsg{Dir: dir, Err: OpenFileExplorer(dir)}
	}
}
