package tools

import (
	"context"

	"github.com/codefionn/fsgate/internal/ops"
)

// WriteFileToolSpec describes the write_file tool.
type WriteFileToolSpec struct{}

func (s *WriteFileToolSpec) Name() string {
	return ToolNameWriteFile
}

func (s *WriteFileToolSpec) Description() string {
	return "Create a file inside the sandbox root, or replace an existing one when overwrite is set"
}

func (s *WriteFileToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "File path relative to the sandbox root",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Full content to write",
			},
			"overwrite": map[string]interface{}{
				"type":        "boolean",
				"description": "Replace the file if it already exists (default false)",
			},
		},
		"required": []string{"path", "content"},
	}
}

func (s *WriteFileToolSpec) Capabilities() Capabilities {
	return Capabilities{Destructive: true}
}

// WriteFileTool executes write_file against the operation service.
type WriteFileTool struct {
	WriteFileToolSpec
	svc *ops.Service
}

func NewWriteFileTool(svc *ops.Service) *WriteFileTool {
	return &WriteFileTool{svc: svc}
}

func (t *WriteFileTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	if path == "" {
		return paramError("path parameter is required")
	}
	content, ok := params["content"].(string)
	if !ok {
		return paramError("content parameter is required")
	}

	result, err := t.svc.Write(ctx, ops.WriteRequest{
		Path:      path,
		Content:   content,
		Overwrite: GetBoolParam(params, "overwrite", false),
	})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: result}
}
