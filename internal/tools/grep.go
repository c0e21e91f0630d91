package tools

import (
	"context"
	"fmt"

	"github.com/codefionn/fsgate/internal/consts"
	"github.com/codefionn/fsgate/internal/ops"
)

// GrepToolSpec describes the grep tool.
type GrepToolSpec struct{}

func (s *GrepToolSpec) Name() string {
	return ToolNameGrep
}

func (s *GrepToolSpec) Description() string {
	return "Search text files under the sandbox root for lines containing a literal substring"
}

func (s *GrepToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Literal substring to search for",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Directory to search under (default: the sandbox root)",
			},
			"file_pattern": map[string]interface{}{
				"type":        "string",
				"description": "Glob filter on file names, e.g. *.go (default all files)",
			},
			"case_sensitive": map[string]interface{}{
				"type":        "boolean",
				"description": "Match case exactly (default true)",
			},
			"recursive": map[string]interface{}{
				"type":        "boolean",
				"description": "Descend into subdirectories (default false)",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Stop after this many matching lines (max %d)", consts.MaxGrepResults),
			},
		},
		"required": []string{"text"},
	}
}

func (s *GrepToolSpec) Capabilities() Capabilities {
	return Capabilities{ReadOnly: true, Idempotent: true}
}

// GrepTool executes grep against the operation service.
type GrepTool struct {
	GrepToolSpec
	svc *ops.Service
}

func NewGrepTool(svc *ops.Service) *GrepTool {
	return &GrepTool{svc: svc}
}

func (t *GrepTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	text := GetStringParam(params, "text", "")
	if text == "" {
		return paramError("text parameter is required")
	}
	path := GetStringParam(params, "path", ".")

	maxResults := GetIntParam(params, "max_results", 0)
	if maxResults < 0 {
		return paramError("max_results must be positive")
	}

	result, err := t.svc.Grep(ctx, ops.GrepRequest{
		Text:          text,
		Path:          path,
		FilePattern:   GetStringParam(params, "file_pattern", ""),
		CaseSensitive: GetBoolParam(params, "case_sensitive", true),
		Recursive:     GetBoolParam(params, "recursive", false),
		MaxResults:    maxResults,
	})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: result}
}
