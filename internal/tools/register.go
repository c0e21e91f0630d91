package tools

import "github.com/codefionn/fsgate/internal/ops"

// NewDefaultRegistry builds a registry with every file operation tool
// bound to the given service.
func NewDefaultRegistry(svc *ops.Service) *Registry {
	r := NewRegistry()
	r.Register(NewReadFileTool(svc))
	r.Register(NewWriteFileTool(svc))
	r.Register(NewListDirectoryTool(svc))
	r.Register(NewSearchFilesTool(svc))
	r.Register(NewGrepTool(svc))
	r.Register(NewDeleteFileTool(svc))
	r.Register(NewFileInfoTool(svc))
	return r
}
