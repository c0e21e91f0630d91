//go:build linux

package sandbox

import (
	"fmt"
	"os"
	"path/filepath"

	landlock "github.com/landlock-lsm/go-landlock/landlock"

	"github.com/codefionn/fsgate/internal/logger"
)

// RestrictProcess applies a kernel-level Landlock ruleset that confines the
// whole process to the sandbox root plus the given extra writable paths
// (log directory, audit database directory). This is defense in depth behind
// the Resolver containment check: once applied it cannot be lifted for the
// lifetime of the process.
//
// With bestEffort set, the strongest ruleset the running kernel supports is
// used; otherwise an unsupported kernel is an error.
func RestrictProcess(root *Root, extraRW []string, bestEffort bool) error {
	rwPaths := []string{root.Path()}
	for _, p := range extraRW {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if _, err := os.Stat(abs); err == nil {
			rwPaths = append(rwPaths, abs)
		}
	}

	// Landlock rejects directory access rights on regular files, so pick
	// the rule type from what the path actually is.
	rules := make([]landlock.Rule, 0, len(rwPaths))
	for _, path := range rwPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			rules = append(rules, landlock.RWFiles(path))
		} else {
			rules = append(rules, landlock.RWDirs(path))
		}
	}

	var err error
	if bestEffort {
		err = landlock.V6.BestEffort().RestrictPaths(rules...)
	} else {
		err = landlock.V6.RestrictPaths(rules...)
	}
	if err != nil {
		return fmt.Errorf("landlock restriction failed: %w", err)
	}

	logger.Debug("Landlock restrictions applied: %d RW paths", len(rwPaths))
	return nil
}
