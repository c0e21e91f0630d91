package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefionn/fsgate/internal/fserr"
	"github.com/codefionn/fsgate/internal/ops"
	"github.com/codefionn/fsgate/internal/sandbox"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	root, err := sandbox.NewRoot(resolved)
	require.NoError(t, err)
	svc := ops.NewService(sandbox.NewResolver(root), nil, 0)
	return NewDefaultRegistry(svc), resolved
}

func TestRegistryListsAllTools(t *testing.T) {
	reg, _ := newTestRegistry(t)

	var names []string
	for _, tool := range reg.List() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{
		ToolNameDeleteFile,
		ToolNameFileInfo,
		ToolNameGrep,
		ToolNameListDirectory,
		ToolNameReadFile,
		ToolNameSearchFiles,
		ToolNameWriteFile,
	}, names)
}

func TestRegistryUnknownTool(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), &ToolCall{ID: "c1", Name: "format_disk"})
	assert.Equal(t, "c1", result.ID)
	assert.Contains(t, result.Error, "tool not found")
	assert.Empty(t, result.ErrorKind)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	reg, dir := newTestRegistry(t)
	ctx := context.Background()

	result := reg.Execute(ctx, &ToolCall{Name: ToolNameWriteFile, Parameters: map[string]interface{}{
		"path":    "docs/readme.md",
		"content": "# fsgate\n",
	}})
	// parent directory does not exist yet
	assert.Equal(t, fserr.KindNotFound, result.ErrorKind)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))

	result = reg.Execute(ctx, &ToolCall{Name: ToolNameWriteFile, Parameters: map[string]interface{}{
		"path":    "docs/readme.md",
		"content": "# fsgate\n",
	}})
	require.Empty(t, result.Error)
	write := result.Result.(*ops.WriteResult)
	assert.True(t, write.Created)
	assert.Equal(t, 9, write.BytesWritten)

	result = reg.Execute(ctx, &ToolCall{Name: ToolNameReadFile, Parameters: map[string]interface{}{
		"path": "docs/readme.md",
	}})
	require.Empty(t, result.Error)
	read := result.Result.(*ops.ReadResult)
	assert.Equal(t, "# fsgate\n", read.Content)
	assert.Equal(t, 1, read.TotalLines)
}

func TestReadFileParamValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	result := reg.Execute(ctx, &ToolCall{Name: ToolNameReadFile, Parameters: map[string]interface{}{}})
	assert.Contains(t, result.Error, "path parameter is required")
	assert.Empty(t, result.ErrorKind)

	result = reg.Execute(ctx, &ToolCall{Name: ToolNameReadFile, Parameters: map[string]interface{}{
		"path":      "a.txt",
		"max_lines": float64(999999),
	}})
	assert.Contains(t, result.Error, "max_lines must be between")
	assert.Empty(t, result.ErrorKind)
}

func TestEscapeSurfacesAsPathEscape(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), &ToolCall{Name: ToolNameReadFile, Parameters: map[string]interface{}{
		"path": "../../etc/passwd",
	}})
	assert.Equal(t, fserr.KindPathEscape, result.ErrorKind)
	assert.Contains(t, result.Error, "escapes the working root")
}

func TestDeleteMissingFileReportsNotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), &ToolCall{Name: ToolNameDeleteFile, Parameters: map[string]interface{}{
		"path": "ghost.txt",
	}})
	assert.Equal(t, fserr.KindNotFound, result.ErrorKind)
}

func TestListDirectoryDefaultsToRoot(t *testing.T) {
	reg, dir := newTestRegistry(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("h"), 0o644))

	result := reg.Execute(context.Background(), &ToolCall{Name: ToolNameListDirectory, Parameters: map[string]interface{}{}})
	require.Empty(t, result.Error)
	list := result.Result.(*ops.ListResult)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, ".hidden", list.Entries[0].Name)

	result = reg.Execute(context.Background(), &ToolCall{Name: ToolNameListDirectory, Parameters: map[string]interface{}{
		"include_hidden": false,
	}})
	require.Empty(t, result.Error)
	list = result.Result.(*ops.ListResult)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "a.txt", list.Entries[0].Name)
}

func TestSearchAndGrepTools(t *testing.T) {
	reg, dir := newTestRegistry(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "util.go"), []byte("package pkg\n"), 0o644))

	result := reg.Execute(context.Background(), &ToolCall{Name: ToolNameSearchFiles, Parameters: map[string]interface{}{
		"pattern": "*.go",
	}})
	require.Empty(t, result.Error)
	search := result.Result.(*ops.SearchResult)
	assert.Equal(t, []string{"main.go"}, search.Matches)

	result = reg.Execute(context.Background(), &ToolCall{Name: ToolNameSearchFiles, Parameters: map[string]interface{}{
		"pattern":   "*.go",
		"recursive": true,
	}})
	require.Empty(t, result.Error)
	search = result.Result.(*ops.SearchResult)
	assert.Equal(t, []string{"main.go", "pkg/util.go"}, search.Matches)

	result = reg.Execute(context.Background(), &ToolCall{Name: ToolNameGrep, Parameters: map[string]interface{}{
		"text":         "package",
		"file_pattern": "*.go",
		"recursive":    true,
	}})
	require.Empty(t, result.Error)
	grep := result.Result.(*ops.GrepResult)
	assert.Len(t, grep.Matches, 2)
	assert.False(t, grep.Truncated)
}

func TestCapabilityMetadata(t *testing.T) {
	reg, _ := newTestRegistry(t)

	readOnly := map[string]bool{
		ToolNameReadFile:      true,
		ToolNameListDirectory: true,
		ToolNameSearchFiles:   true,
		ToolNameGrep:          true,
		ToolNameFileInfo:      true,
		ToolNameWriteFile:     false,
		ToolNameDeleteFile:    false,
	}
	for _, tool := range reg.List() {
		caps := tool.Capabilities()
		assert.Equal(t, readOnly[tool.Name()], caps.ReadOnly, tool.Name())
		assert.Equal(t, !readOnly[tool.Name()], caps.Destructive, tool.Name())
		assert.False(t, caps.OpenWorld, tool.Name())
	}
}

func TestGetParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"s": "hello",
		"i": float64(7),
		"b": true,
		"x": []int{1},
	}
	assert.Equal(t, "hello", GetStringParam(params, "s", "d"))
	assert.Equal(t, "d", GetStringParam(params, "missing", "d"))
	assert.Equal(t, "d", GetStringParam(params, "i", "d"))
	assert.Equal(t, 7, GetIntParam(params, "i", 0))
	assert.Equal(t, 3, GetIntParam(params, "missing", 3))
	assert.True(t, GetBoolParam(params, "b", false))
	assert.True(t, GetBoolParam(params, "missing", true))
}
