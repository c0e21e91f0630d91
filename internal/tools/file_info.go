package tools

import (
	"context"

	"github.com/codefionn/fsgate/internal/ops"
)

// FileInfoToolSpec describes the file_info tool.
type FileInfoToolSpec struct{}

func (s *FileInfoToolSpec) Name() string {
	return ToolNameFileInfo
}

func (s *FileInfoToolSpec) Description() string {
	return "Return metadata for a file or directory inside the sandbox root"
}

func (s *FileInfoToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path relative to the sandbox root",
			},
		},
		"required": []string{"path"},
	}
}

func (s *FileInfoToolSpec) Capabilities() Capabilities {
	return Capabilities{ReadOnly: true, Idempotent: true}
}

// FileInfoTool executes file_info against the operation service.
type FileInfoTool struct {
	FileInfoToolSpec
	svc *ops.Service
}

func NewFileInfoTool(svc *ops.Service) *FileInfoTool {
	return &FileInfoTool{svc: svc}
}

func (t *FileInfoTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	if path == "" {
		return paramError("path parameter is required")
	}

	info, err := t.svc.Info(ctx, ops.InfoRequest{Path: path})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: info}
}
