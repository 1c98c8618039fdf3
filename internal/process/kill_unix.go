//go:build !windows

package process

import "syscall"

// KillProcessGroup kills the headless Chrome process and its helpers by
// sending SIGKILL to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; error ignored as launcher.Kill() provides fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
