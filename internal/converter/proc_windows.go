//go:build windows

package converter

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps the console converter from flashing a window for
// every file.
const createNoWindow = 0x08000000

func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
}
