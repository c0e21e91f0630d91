package ops

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codefionn/fsgate/internal/consts"
	"github.com/codefionn/fsgate/internal/fserr"
	"github.com/codefionn/fsgate/internal/logger"
)

// SearchRequest finds files by glob pattern under a base directory.
type SearchRequest struct {
	Pattern   string
	Path      string // base directory, default "."
	Recursive bool
}

// SearchResult lists matching files, root-relative and sorted.
type SearchResult struct {
	Pattern string   `json:"pattern"`
	Path    string   `json:"path"`
	Matches []string `json:"matches"`
	Count   int      `json:"count"`
}

// Search returns the files under the base directory whose names match the
// glob pattern. Patterns are matched against the slash-separated path
// relative to the base; "*" does not cross directory separators, so a
// non-recursive search with "*.txt" only sees direct children. Recursive
// expansion matches the pattern at any depth.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if strings.TrimSpace(req.Pattern) == "" {
		return nil, fserr.New(fserr.KindInvalidPath, req.Pattern)
	}

	base, err := s.resolveBaseDir(req.Path)
	if err != nil {
		return nil, err
	}

	pattern := effectivePattern(req.Pattern, req.Recursive)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fserr.New(fserr.KindInvalidPath, req.Pattern)
	}

	var matches []string
	walkErr := s.walkFiles(base, func(abs, rel string) error {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil || !ok {
			return nil
		}
		matches = append(matches, s.rel(abs))
		return nil
	})
	if walkErr != nil {
		return nil, fserr.Translate(walkErr, req.Path)
	}

	sort.Strings(matches)
	logger.Debug("search: pattern=%s base=%s matches=%d", req.Pattern, req.Path, len(matches))

	return &SearchResult{
		Pattern: req.Pattern,
		Path:    req.Path,
		Matches: matches,
		Count:   len(matches),
	}, nil
}

// GrepRequest scans file contents for a substring.
type GrepRequest struct {
	Text          string
	Path          string // base directory, default "."
	FilePattern   string // glob limiting which files are scanned, default "*"
	CaseSensitive bool
	Recursive     bool
	MaxResults    int // 0 means the service default
}

// GrepMatch is one matching line.
type GrepMatch struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// GrepResult carries matches ordered by file then line number.
type GrepResult struct {
	Text         string      `json:"text"`
	Matches      []GrepMatch `json:"matches"`
	FilesScanned int         `json:"files_scanned"`
	Truncated    bool        `json:"truncated"`
}

// Grep scans every file matching the file pattern for the search text.
// Files that cannot be read or look binary are skipped, never fatal.
func (s *Service) Grep(ctx context.Context, req GrepRequest) (*GrepResult, error) {
	base, err := s.resolveBaseDir(req.Path)
	if err != nil {
		return nil, err
	}

	filePattern := req.FilePattern
	if filePattern == "" {
		filePattern = "*"
	}
	pattern := effectivePattern(filePattern, req.Recursive)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fserr.New(fserr.KindInvalidPath, req.FilePattern)
	}

	limit := req.MaxResults
	if limit <= 0 {
		limit = s.maxGrepResults
	}
	if limit > consts.MaxGrepResults {
		limit = consts.MaxGrepResults
	}

	needle := req.Text
	if !req.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	result := &GrepResult{Text: req.Text, Matches: []GrepMatch{}}

	walkErr := s.walkFiles(base, func(abs, rel string) error {
		if result.Truncated {
			return fs.SkipAll
		}

		ok, err := doublestar.Match(pattern, rel)
		if err != nil || !ok {
			return nil
		}

		data, err := os.ReadFile(abs)
		if err != nil {
			// Unreadable files are skipped, not fatal
			return nil
		}
		if isLikelyBinary(abs, data) {
			return nil
		}

		result.FilesScanned++
		relToRoot := s.rel(abs)
		for i, line := range splitLines(string(data)) {
			haystack := line
			if !req.CaseSensitive {
				haystack = strings.ToLower(line)
			}
			if !strings.Contains(haystack, needle) {
				continue
			}
			result.Matches = append(result.Matches, GrepMatch{
				File: relToRoot,
				Line: i + 1,
				Text: line,
			})
			if limit > 0 && len(result.Matches) >= limit {
				result.Truncated = true
				break
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, fserr.Translate(walkErr, req.Path)
	}

	logger.Debug("grep: text=%q base=%s files=%d matches=%d",
		req.Text, req.Path, result.FilesScanned, len(result.Matches))
	return result, nil
}

// resolveBaseDir resolves a search base and verifies it is a directory.
func (s *Service) resolveBaseDir(raw string) (string, error) {
	if raw == "" {
		raw = "."
	}
	base, err := s.resolver.Resolve(raw)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(base)
	if err != nil {
		return "", fserr.Translate(err, raw)
	}
	if !info.IsDir() {
		return "", fserr.New(fserr.KindNotADirectory, raw)
	}
	return base, nil
}

// effectivePattern rewrites a user glob for recursive expansion: searching
// recursively for "*.md" means "**/*.md" relative to the base.
func effectivePattern(pattern string, recursive bool) string {
	p := filepath.ToSlash(pattern)
	if recursive && !strings.HasPrefix(p, "**/") {
		p = path.Join("**", p)
	}
	return p
}

// walkFiles visits every regular file below base in deterministic lexical
// order, calling fn with the absolute path and the slash-separated path
// relative to base. Directories that cannot be read are skipped. Symlinked
// directories are not followed, so the walk cannot leave the sandbox.
func (s *Service) walkFiles(base string, fn func(abs, rel string) error) error {
	return filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == base {
				return err
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(base, p)
		if err != nil {
			return nil
		}
		return fn(p, filepath.ToSlash(rel))
	})
}
