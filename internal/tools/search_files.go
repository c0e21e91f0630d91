package tools

import (
	"context"

	"github.com/codefionn/fsgate/internal/ops"
)

// SearchFilesToolSpec describes the search_files tool.
type SearchFilesToolSpec struct{}

func (s *SearchFilesToolSpec) Name() string {
	return ToolNameSearchFiles
}

func (s *SearchFilesToolSpec) Description() string {
	return "Find files matching a glob pattern under a directory inside the sandbox root"
}

func (s *SearchFilesToolSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"pattern": map[string]interface{}{
				"type":        "string",
				"description": "Glob pattern, e.g. *.go or src/**/*.md",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Directory to search under (default: the sandbox root)",
			},
			"recursive": map[string]interface{}{
				"type":        "boolean",
				"description": "Match at any depth below the base directory (default false)",
			},
		},
		"required": []string{"pattern"},
	}
}

func (s *SearchFilesToolSpec) Capabilities() Capabilities {
	return Capabilities{ReadOnly: true, Idempotent: true}
}

// SearchFilesTool executes search_files against the operation service.
type SearchFilesTool struct {
	SearchFilesToolSpec
	svc *ops.Service
}

func NewSearchFilesTool(svc *ops.Service) *SearchFilesTool {
	return &SearchFilesTool{svc: svc}
}

func (t *SearchFilesTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	pattern := GetStringParam(params, "pattern", "")
	path := GetStringParam(params, "path", ".")

	result, err := t.svc.Search(ctx, ops.SearchRequest{
		Pattern:   pattern,
		Path:      path,
		Recursive: GetBoolParam(params, "recursive", false),
	})
	if err != nil {
		return opError(err, path)
	}
	return &ToolResult{Result: result}
}
