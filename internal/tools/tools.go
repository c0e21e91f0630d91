// Package tools adapts the file operation service to a transport-facing
// tool registry. Each operation is a named tool with a JSON-schema
// parameter description and an advisory capability record; the registry
// guarantees that no failure escapes the execution boundary unclassified.
package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/codefionn/fsgate/internal/fserr"
	"github.com/codefionn/fsgate/internal/logger"
)

// Tool name constants
const (
	ToolNameReadFile      = "read_file"
	ToolNameWriteFile     = "write_file"
	ToolNameListDirectory = "list_directory"
	ToolNameSearchFiles   = "search_files"
	ToolNameGrep          = "grep"
	ToolNameDeleteFile    = "delete_file"
	ToolNameFileInfo      = "file_info"
)

// Capabilities is the static advisory record published per tool. The
// gateway never enforces these flags; callers consume them to decide
// whether to prompt for confirmation before invoking a tool.
type Capabilities struct {
	ReadOnly    bool `json:"read_only"`
	Destructive bool `json:"destructive"`
	Idempotent  bool `json:"idempotent"`
	OpenWorld   bool `json:"open_world"`
}

// ToolSpec is the static specification of a tool: name, description,
// parameter schema and capability record. Specs carry no runtime state.
type ToolSpec interface {
	Name() string
	Description() string
	Parameters() map[string]interface{}
	Capabilities() Capabilities
}

// ToolExecutor handles the actual execution of a tool.
type ToolExecutor interface {
	Execute(ctx context.Context, params map[string]interface{}) *ToolResult
}

// Tool combines ToolSpec and ToolExecutor.
type Tool interface {
	ToolSpec
	ToolExecutor
}

// ToolCall is a single invocation request.
type ToolCall struct {
	ID         string                 `json:"id,omitempty"`
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// ToolResult is the outcome of a tool execution: a payload or a classified
// error, never both. An empty ErrorKind alongside a non-empty Error marks a
// parameter problem rather than an operation failure.
type ToolResult struct {
	ID        string      `json:"id,omitempty"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind fserr.Kind  `json:"error_kind,omitempty"`
}

// paramError builds a result for a malformed parameter set.
func paramError(msg string) *ToolResult {
	return &ToolResult{Error: msg}
}

// opError classifies an operation failure through the error translator.
func opError(err error, path string) *ToolResult {
	translated := fserr.Translate(err, path)
	return &ToolResult{
		Error:     translated.Error(),
		ErrorKind: translated.Kind,
	}
}

// Registry manages available tools
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	result := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Execute routes a call to its tool. Unknown tools, nil results and panics
// all surface as structured results; nothing propagates across the boundary.
func (r *Registry) Execute(ctx context.Context, call *ToolCall) (result *ToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("tool %s panicked: %v", call.Name, rec)
			result = &ToolResult{
				ID:        call.ID,
				Error:     fserr.New(fserr.KindIOFailure, "").Error(),
				ErrorKind: fserr.KindIOFailure,
			}
		}
	}()

	tool, ok := r.tools[call.Name]
	if !ok {
		return &ToolResult{ID: call.ID, Error: "tool not found: " + call.Name}
	}

	result = tool.Execute(ctx, call.Parameters)
	if result == nil {
		return &ToolResult{ID: call.ID, Error: "tool returned nil result"}
	}

	result.ID = call.ID
	return result
}

// Helper function to get string parameter
func GetStringParam(params map[string]interface{}, key string, defaultVal string) string {
	if val, ok := params[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultVal
}

// Helper function to get int parameter
func GetIntParam(params map[string]interface{}, key string, defaultVal int) int {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return int(i)
			}
		}
	}
	return defaultVal
}

// Helper function to get bool parameter
func GetBoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if val, ok := params[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultVal
}
