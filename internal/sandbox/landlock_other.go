//go:build !linux

package sandbox

import (
	"github.com/codefionn/fsgate/internal/logger"
)

// RestrictProcess is a no-op on platforms without Landlock. The Resolver
// containment check still applies.
func RestrictProcess(root *Root, extraRW []string, bestEffort bool) error {
	logger.Debug("Landlock sandboxing not available on this platform (non-Linux)")
	return nil
}
