package sandbox

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/codefionn/fsgate/internal/fserr"
)

// maxLinkHops bounds manual symlink substitution so a link cycle cannot
// spin the resolver forever.
const maxLinkHops = 40

// Resolver turns caller-supplied path strings into absolute paths proven to
// lie inside the sandbox root. No other component may construct in-sandbox
// paths by string concatenation.
type Resolver struct {
	root *Root
}

// NewResolver creates a resolver bound to the given root.
func NewResolver(root *Root) *Resolver {
	return &Resolver{root: root}
}

// Root returns the root the resolver is bound to.
func (r *Resolver) Root() *Root {
	return r.root
}

// Resolve canonicalizes raw against the sandbox root and verifies
// containment. Symlinks on the existing portion of the path are resolved
// before the check: a link inside the root pointing outside it is an escape,
// not a valid target. Paths whose leaf does not exist yet resolve through
// their deepest existing ancestor, so writes to new files still pass.
func (r *Resolver) Resolve(raw string) (string, error) {
	if raw == "" {
		return "", fserr.New(fserr.KindInvalidPath, raw)
	}
	if strings.ContainsRune(raw, 0) {
		return "", fserr.New(fserr.KindInvalidPath, raw)
	}

	joined := raw
	if filepath.IsAbs(joined) {
		joined = filepath.Clean(joined)
	} else {
		joined = filepath.Join(r.root.path, joined)
	}

	resolved, err := resolveExistingPrefix(joined)
	if err != nil {
		return "", fserr.Translate(err, raw)
	}

	if !r.contains(resolved) {
		return "", fserr.New(fserr.KindPathEscape, raw)
	}

	return resolved, nil
}

// contains reports whether p equals the root or sits below it. The comparison
// is segment-aware: appending the separator to the root prevents a sibling
// directory with a shared name prefix (root "/work" vs "/work-other") from
// passing.
func (r *Resolver) contains(p string) bool {
	root := r.root.path
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

// resolveExistingPrefix canonicalizes the deepest existing ancestor of p and
// re-appends the missing trailing segments. p must already be absolute and
// lexically cleaned, so the missing tail carries no "." or ".." segments.
//
// EvalSymlinks reports ErrNotExist for a dangling symlink as well as for a
// genuinely missing path. The two must not be conflated: a dangling link
// still redirects any write through it, so its target is substituted
// manually and resolution continues from there. Otherwise the link segment
// would be re-appended verbatim and the containment check would never see
// the real destination.
func resolveExistingPrefix(p string) (string, error) {
	var tail []string
	current := p
	hops := 0

	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}

		if info, lerr := os.Lstat(current); lerr == nil && info.Mode()&os.ModeSymlink != 0 {
			hops++
			if hops > maxLinkHops {
				return "", fs.ErrInvalid
			}
			target, rerr := os.Readlink(current)
			if rerr != nil {
				return "", rerr
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(current), target)
			}
			current = filepath.Clean(target)
			continue
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Walked up to the filesystem root without finding an
			// existing ancestor.
			return "", err
		}
		tail = append(tail, filepath.Base(current))
		current = parent
	}
}
