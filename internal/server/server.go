// Package server exposes the tool registry over HTTP. The API is JSON in,
// JSON out: tool discovery on GET, tool execution on POST, with taxonomy
// kinds mapped onto HTTP status codes.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/codefionn/fsgate/internal/fserr"
	"github.com/codefionn/fsgate/internal/logger"
	"github.com/codefionn/fsgate/internal/tools"
)

// Server provides the HTTP interface of the gateway
type Server struct {
	registry *tools.Registry
	rootDir  string
	addr     string
	server   *http.Server
	router   *httprouter.Router
}

// NewServer creates a new gateway server
func NewServer(registry *tools.Registry, rootDir, addr string) *Server {
	s := &Server{
		registry: registry,
		rootDir:  rootDir,
		addr:     addr,
		router:   httprouter.New(),
	}

	s.setupRoutes()
	return s
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	logger.Info("serving on %s (root %s)", s.addr, s.rootDir)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/v1/tools", s.handleListTools)
	s.router.POST("/v1/tools/:name", s.handleExecuteTool)
}

// toolDescriptor is the discovery representation of one tool.
type toolDescriptor struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Parameters   map[string]interface{} `json:"parameters"`
	Capabilities tools.Capabilities     `json:"capabilities"`
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"root":   s.rootDir,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleListTools returns every registered tool with its capability record.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list := s.registry.List()
	descriptors := make([]toolDescriptor, 0, len(list))
	for _, tool := range list {
		descriptors = append(descriptors, toolDescriptor{
			Name:         tool.Name(),
			Description:  tool.Description(),
			Parameters:   tool.Parameters(),
			Capabilities: tool.Capabilities(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": descriptors})
}

// handleExecuteTool decodes a parameter object and runs the named tool.
func (s *Server) handleExecuteTool(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")

	params := map[string]interface{}{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeError(w, http.StatusBadRequest, "", "request body is not a JSON object")
			return
		}
	}

	if _, ok := s.registry.Get(name); !ok {
		writeError(w, http.StatusNotFound, "", "tool not found: "+name)
		return
	}

	result := s.registry.Execute(r.Context(), &tools.ToolCall{
		Name:       name,
		Parameters: params,
	})

	if result.Error != "" {
		logger.Debug("tool %s failed: %s", name, result.Error)
		writeError(w, statusForKind(result.ErrorKind), result.ErrorKind, result.Error)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"result": result.Result})
}

// statusForKind maps a taxonomy kind to an HTTP status. Parameter errors
// carry no kind and report as bad requests.
func statusForKind(kind fserr.Kind) int {
	switch kind {
	case fserr.KindNotFound:
		return http.StatusNotFound
	case fserr.KindAlreadyExists:
		return http.StatusConflict
	case fserr.KindPermissionDenied:
		return http.StatusForbidden
	case fserr.KindIOFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind fserr.Kind, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error":      msg,
		"error_kind": kind,
	})
}
