// Package ops implements the seven file operations of the gateway. Every
// path argument goes through the sandbox resolver exactly once before any
// filesystem access, and every failure leaves the package as a classified
// *fserr.Error.
package ops

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/codefionn/fsgate/internal/consts"
	"github.com/codefionn/fsgate/internal/fserr"
	"github.com/codefionn/fsgate/internal/logger"
	"github.com/codefionn/fsgate/internal/sandbox"
)

// Journal records mutating operations. Implementations must tolerate being
// called from the request path; recording failures are not operation
// failures.
type Journal interface {
	RecordWrite(path string, content []byte)
	RecordDelete(path string)
}

// Service executes file operations against the sandboxed root. It processes
// one request at a time per caller and keeps no per-request state; the only
// shared value is the immutable resolver.
type Service struct {
	resolver *sandbox.Resolver
	journal  Journal // may be nil

	// maxGrepResults caps grep output when a request sets no limit of its
	// own. Zero means unlimited.
	maxGrepResults int
}

// NewService creates a service bound to the given resolver. journal may be
// nil to disable audit recording.
func NewService(resolver *sandbox.Resolver, journal Journal, maxGrepResults int) *Service {
	return &Service{
		resolver:       resolver,
		journal:        journal,
		maxGrepResults: maxGrepResults,
	}
}

// rel rewrites an absolute resolved path as root-relative for presentation.
func (s *Service) rel(abs string) string {
	rel, err := filepath.Rel(s.resolver.Root().Path(), abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// ReadRequest asks for file content. MaxLines of zero means the whole file;
// the validator in front of the service guarantees 1..consts.MaxReadLines
// otherwise.
type ReadRequest struct {
	Path     string
	MaxLines int
}

// ReadResult carries file content, truncated to MaxLines when requested.
type ReadResult struct {
	Path       string `json:"path"`
	Content    string `json:"content"`
	Lines      int    `json:"lines"`
	TotalLines int    `json:"total_lines"`
	Truncated  bool   `json:"truncated"`
}

// Read returns the text content of a file.
func (s *Service) Read(ctx context.Context, req ReadRequest) (*ReadResult, error) {
	target, err := s.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}
	if info.IsDir() {
		return nil, fserr.New(fserr.KindIsADirectory, req.Path)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}

	content := string(data)
	lines := splitLines(content)
	total := len(lines)

	result := &ReadResult{
		Path:       s.rel(target),
		Content:    content,
		Lines:      total,
		TotalLines: total,
	}

	if req.MaxLines > 0 && total > req.MaxLines {
		result.Content = strings.Join(lines[:req.MaxLines], "\n")
		result.Lines = req.MaxLines
		result.Truncated = true
	}

	logger.Debug("read: %s (%d of %d lines)", req.Path, result.Lines, total)
	return result, nil
}

// WriteRequest writes Content to Path. Existing files are only replaced when
// Overwrite is set.
type WriteRequest struct {
	Path      string
	Content   string
	Overwrite bool
}

// WriteResult reports the outcome of a write.
type WriteResult struct {
	Path         string `json:"path"`
	BytesWritten int    `json:"bytes_written"`
	Created      bool   `json:"created"`
}

// Write stores content at the resolved path. The parent directory must
// already exist; the gateway never creates directories implicitly.
func (s *Service) Write(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	target, err := s.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	parentInfo, err := os.Stat(filepath.Dir(target))
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}
	if !parentInfo.IsDir() {
		return nil, fserr.New(fserr.KindNotADirectory, req.Path)
	}

	created := true
	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return nil, fserr.New(fserr.KindIsADirectory, req.Path)
		}
		if !req.Overwrite {
			return nil, fserr.New(fserr.KindAlreadyExists, req.Path)
		}
		created = false
	} else if !os.IsNotExist(err) {
		return nil, fserr.Translate(err, req.Path)
	}

	if err := os.WriteFile(target, []byte(req.Content), consts.DefaultFilePerm); err != nil {
		return nil, fserr.Translate(err, req.Path)
	}

	if s.journal != nil {
		s.journal.RecordWrite(s.rel(target), []byte(req.Content))
	}

	logger.Info("write: %s (%d bytes, created=%v)", req.Path, len(req.Content), created)
	return &WriteResult{
		Path:         s.rel(target),
		BytesWritten: len(req.Content),
		Created:      created,
	}, nil
}

// EntryKind classifies a directory entry.
type EntryKind string

const (
	EntryFile    EntryKind = "file"
	EntryDir     EntryKind = "dir"
	EntrySymlink EntryKind = "symlink"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name string    `json:"name"`
	Kind EntryKind `json:"kind"`
	Size int64     `json:"size"`
}

// ListRequest lists a directory. Hidden entries (dotfiles) are included
// unless IncludeHidden is explicitly false.
type ListRequest struct {
	Path          string
	IncludeHidden bool
}

// ListResult is a deterministic, name-ordered directory listing.
type ListResult struct {
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// List returns directory entries sorted by name ascending.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	target, err := s.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}
	if !info.IsDir() {
		return nil, fserr.New(fserr.KindNotADirectory, req.Path)
	}

	dirEntries, err := os.ReadDir(target)
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !req.IncludeHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}

		kind := EntryFile
		switch {
		case de.Type()&os.ModeSymlink != 0:
			kind = EntrySymlink
		case de.IsDir():
			kind = EntryDir
		}

		var size int64
		if fi, err := de.Info(); err == nil {
			size = fi.Size()
		}

		entries = append(entries, Entry{Name: de.Name(), Kind: kind, Size: size})
	}

	// os.ReadDir already sorts by name; keep the guarantee explicit.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return &ListResult{Path: s.rel(target), Entries: entries}, nil
}

// DeleteRequest removes a single file.
type DeleteRequest struct {
	Path string
}

// DeleteResult confirms a removal.
type DeleteResult struct {
	Path    string `json:"path"`
	Deleted bool   `json:"deleted"`
}

// Delete removes a file. Directory deletion is unsupported by design.
func (s *Service) Delete(ctx context.Context, req DeleteRequest) (*DeleteResult, error) {
	target, err := s.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := os.Lstat(target)
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}
	if info.IsDir() {
		return nil, fserr.New(fserr.KindIsADirectory, req.Path)
	}

	if err := os.Remove(target); err != nil {
		return nil, fserr.Translate(err, req.Path)
	}

	if s.journal != nil {
		s.journal.RecordDelete(s.rel(target))
	}

	logger.Info("delete: %s", req.Path)
	return &DeleteResult{Path: s.rel(target), Deleted: true}, nil
}

// InfoRequest asks for metadata without reading content.
type InfoRequest struct {
	Path string
}

// FileInfo is a point-in-time projection of OS metadata. It is never cached.
type FileInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"modified"`
	IsDir     bool      `json:"is_dir"`
	IsFile    bool      `json:"is_file"`
	IsSymlink bool      `json:"is_symlink"`
	Mode      string    `json:"mode"`
	Extension string    `json:"extension,omitempty"`
	LineCount int       `json:"line_count,omitempty"`
}

// Info returns metadata for a file or directory.
func (s *Service) Info(ctx context.Context, req InfoRequest) (*FileInfo, error) {
	target, err := s.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := os.Lstat(target)
	if err != nil {
		return nil, fserr.Translate(err, req.Path)
	}

	result := &FileInfo{
		Name:      info.Name(),
		Path:      s.rel(target),
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		IsDir:     info.IsDir(),
		IsFile:    info.Mode().IsRegular(),
		IsSymlink: info.Mode()&os.ModeSymlink != 0,
		Mode:      info.Mode().Perm().String(),
	}

	if result.IsFile {
		result.Extension = filepath.Ext(target)
		if data, err := os.ReadFile(target); err == nil && !isLikelyBinary(target, data) {
			result.LineCount = len(splitLines(string(data)))
		}
	}

	return result, nil
}

// splitLines splits content the way line counts are reported everywhere in
// the gateway: a trailing newline does not open an empty final line, but an
// empty file still has one (empty) line.
func splitLines(content string) []string {
	trimmed := strings.TrimSuffix(content, "\n")
	return strings.Split(trimmed, "\n")
}
