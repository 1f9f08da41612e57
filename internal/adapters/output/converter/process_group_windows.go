//go:build windows

package converter

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts cmd in a new process group. Cancellation falls back to
// killing the direct child; WaitDelay bounds the wait for the rest.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
