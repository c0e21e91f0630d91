package tools

import (
	"context"

	"github.com/codefionn/fsgate/internal/ops"
)

// DeleteFileToolSpec describes the delete_file tool.
type DeleteFileToolSpec struct{}

func (s *DeleteFileToolSpec) Name() string {
	return ToolNameDeleteFile
}

func (s *DeleteFileToolSpec) Description() string {
	return "Delete a single file inside the sandbox root; directories are never removed"
}

func (s *DeleteFileToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "File path relative to the sandbox root",
			},
		},
		"required": []string{"path"},
	}
}

func (s *DeleteFileToolSpec) Capabilities() Capabilities {
	return Capabilities{Destructive: true}
}

// DeleteFileTool executes delete_file against the operation service.
type DeleteFileTool struct {
	DeleteFileToolSpec
	svc *ops.Service
}

func NewDeleteFileTool(svc *ops.Service) *DeleteFileTool {
	return &DeleteFileTool{svc: svc}
}

func (t *DeleteFileTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	if path == "" {
		return paramError("path parameter is required")
	}

	result, err := t.svc.Delete(ctx, ops.DeleteRequest{Path: path})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: result}
}
