package tools

import (
	"context"

	"github.com/codefionn/fsgate/internal/ops"
)

// ListDirectoryToolSpec describes the list_directory tool.
type ListDirectoryToolSpec struct{}

func (s *ListDirectoryToolSpec) Name() string {
	return ToolNameListDirectory
}

func (s *ListDirectoryToolSpec) Description() string {
	return "List the entries of a directory inside the sandbox root, sorted by name"
}

func (s *ListDirectoryToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Directory path relative to the sandbox root (default: the root itself)",
			},
			"include_hidden": map[string]interface{}{
				"type":        "boolean",
				"description": "Include dotfile entries (default true)",
			},
		},
	}
}

func (s *ListDirectoryToolSpec) Capabilities() Capabilities {
	return Capabilities{ReadOnly: true, Idempotent: true}
}

// ListDirectoryTool executes list_directory against the operation service.
type ListDirectoryTool struct {
	ListDirectoryToolSpec
	svc *ops.Service
}

func NewListDirectoryTool(svc *ops.Service) *ListDirectoryTool {
	return &ListDirectoryTool{svc: svc}
}

func (t *ListDirectoryTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", ".")

	result, err := t.svc.List(ctx, ops.ListRequest{
		Path:          path,
		IncludeHidden: GetBoolParam(params, "include_hidden", true),
	})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: result}
}
