// Package fserr defines the fixed error taxonomy of the gateway. Every
// failure that crosses the operation boundary is one of the kinds below,
// carrying a stable remedy message and nothing from the underlying OS error.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind identifies one entry of the error taxonomy.
type Kind string

const (
	KindPathEscape       Kind = "path_escape"
	KindInvalidPath      Kind = "invalid_path"
	KindNotFound         Kind = "not_found"
	KindNotADirectory    Kind = "not_a_directory"
	KindIsADirectory     Kind = "is_a_directory"
	KindAlreadyExists    Kind = "already_exists"
	KindPermissionDenied Kind = "permission_denied"
	KindIOFailure        Kind = "io_failure"
)

// remedies holds the stable per-kind remedy text. The path a caller supplied
// may be prepended; OS error internals never are.
var remedies = map[Kind]string{
	KindPathEscape:       "path escapes the working root; use a path relative to the root directory",
	KindInvalidPath:      "path is empty or contains disallowed characters; supply a plain relative path",
	KindNotFound:         "no such file or directory; check the path is correct and relative to the working root",
	KindNotADirectory:    "the path is not a directory; pass a directory path",
	KindIsADirectory:     "the path is a directory; this operation only works on files",
	KindAlreadyExists:    "the file already exists; set overwrite=true to replace it",
	KindPermissionDenied: "permission denied; the gateway process cannot access this path",
	KindIOFailure:        "the filesystem operation failed; retry or check the storage backing the root",
}

// Error is a classified operation failure.
type Error struct {
	Kind Kind
	Path string
}

func (e *Error) Error() string {
	remedy := remedies[e.Kind]
	if e.Path == "" {
		return remedy
	}
	return fmt.Sprintf("'%s': %s", e.Path, remedy)
}

// New builds an Error of the given kind for the caller-supplied path.
func New(kind Kind, path string) *Error {
	return &Error{Kind: kind, Path: path}
}

// KindOf extracts the taxonomy kind from an error. Unclassified errors
// report KindIOFailure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIOFailure
}

// Translate maps an arbitrary internal error to exactly one taxonomy kind.
// Already-classified errors pass through unchanged. The path argument is the
// string the caller supplied, used only for the message.
func Translate(err error, path string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return New(KindNotFound, path)
	case errors.Is(err, fs.ErrExist):
		return New(KindAlreadyExists, path)
	case errors.Is(err, fs.ErrPermission):
		return New(KindPermissionDenied, path)
	case errors.Is(err, syscall.ENOTDIR):
		return New(KindNotADirectory, path)
	case errors.Is(err, syscall.EISDIR):
		return New(KindIsADirectory, path)
	case errors.Is(err, fs.ErrInvalid):
		return New(KindInvalidPath, path)
	}

	return New(KindIOFailure, path)
}
