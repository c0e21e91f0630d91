// Package sandbox confines every path the gateway touches to a single root
// directory. The root is canonicalized once at startup; Resolver proves that
// caller-supplied paths stay inside it, resolving symlinks before the
// containment check so links planted inside the root cannot point out of it.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root is the canonical directory all operations are confined to.
// It is created once at process start and never mutated.
type Root struct {
	path string
}

// NewRoot canonicalizes dir (symlinks resolved, "." and ".." collapsed) and
// returns it as the sandbox root. An empty dir means the process working
// directory.
func NewRoot(dir string) (*Root, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to make root absolute: %w", err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize root %s: %w", abs, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", canonical, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", canonical)
	}

	return &Root{path: canonical}, nil
}

// Path returns the canonical root directory.
func (r *Root) Path() string {
	return r.path
}
