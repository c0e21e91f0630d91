//go:build windows

package lockfile

import "os"

// isProcessRunning checks whether a PID is alive. FindProcess only fails
// on Windows when no such process exists.
func isProcessRunning(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
