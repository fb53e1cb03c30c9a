//go:build windows
// +build windows

package local

import (
	"os/exec"
	"syscall"
)

const createNewProcessGroup = 0x00000200

func detachProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: createNewProcessGroup,
	}
}
