//go:build windows

package converter

import (
	"os/exec"
	"syscall"
)

// hideConsoleWindow keeps the encoder subprocess from flashing a console
// window when the host process has no console of its own.
func hideConsoleWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
