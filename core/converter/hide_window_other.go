//go:build !windows

package converter

import "os/exec"

// hideConsoleWindow is a no-op outside Windows; no platform here spawns a
// console for child processes.
func hideConsoleWindow(cmd *exec.Cmd) {}
