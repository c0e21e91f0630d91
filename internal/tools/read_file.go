package tools

import (
	"context"
	"fmt"

	"github.com/codefionn/fsgate/internal/consts"
	"github.com/codefionn/fsgate/internal/ops"
)

// ReadFileToolSpec describes the read_file tool.
type ReadFileToolSpec struct{}

func (s *ReadFileToolSpec) Name() string {
	return ToolNameReadFile
}

func (s *ReadFileToolSpec) Description() string {
	return "Read the contents of a text file inside the sandbox root, optionally limited to the first N lines"
}

func (s *ReadFileToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "File path relative to the sandbox root",
			},
			"max_lines": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Maximum number of lines to return (1-%d)", consts.MaxReadLines),
			},
		},
		"required": []string{"path"},
	}
}

func (s *ReadFileToolSpec) Capabilities() Capabilities {
	return Capabilities{ReadOnly: true, Idempotent: true}
}

// ReadFileTool executes read_file against the operation service.
type ReadFileTool struct {
	ReadFileToolSpec
	svc *ops.Service
}

func NewReadFileTool(svc *ops.Service) *ReadFileTool {
	return &ReadFileTool{svc: svc}
}

func (t *ReadFileTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	if path == "" {
		return paramError("path parameter is required")
	}

	maxLines := GetIntParam(params, "max_lines", 0)
	if maxLines < 0 || maxLines > consts.MaxReadLines {
		return paramError(fmt.Sprintf("max_lines must be between 1 and %d", consts.MaxReadLines))
	}

	result, err := t.svc.Read(ctx, ops.ReadRequest{Path: path, MaxLines: maxLines})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: result}
}
