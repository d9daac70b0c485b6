// Package mcp exposes the node catalog as an MCP server so agent tooling
// and editor integrations can query it over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	quantflow "github.com/meaigood001/panda-quantflow"
	"github.com/meaigood001/panda-quantflow/pkg/catalog"
	"github.com/meaigood001/panda-quantflow/pkg/domain"
)

// Catalog is the query surface the MCP tools read from.
type Catalog interface {
	Catalog() []catalog.Node
	Describe(identity string) (domain.Descriptor, error)
}

// ReloadFunc rescans the plugin roots and reports loaded/failed counts.
type ReloadFunc func(ctx context.Context) (loaded, failed int)

// Server wraps the catalog service and exposes it as an MCP server.
type Server struct {
	service   Catalog
	reload    ReloadFunc
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithReload enables the reload_plugins tool.
func WithReload(fn ReloadFunc) Option {
	return func(s *Server) {
		s.reload = fn
	}
}

// NewServer creates a new MCP server instance over the catalog.
func NewServer(service Catalog, opts ...Option) *Server {
	s := &Server{
		service:   service,
		mcpServer: server.NewMCPServer("quantflow-catalog", quantflow.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_catalog
	s.mcpServer.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("Get the full node catalog as a nested group tree."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodes := s.service.Catalog()
		if nodes == nil {
			nodes = []catalog.Node{}
		}
		jsonBytes, err := json.Marshal(map[string]any{"catalog": nodes})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_node
	s.mcpServer.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Get one node descriptor, including its input and output schemas."),
		mcp.WithString("identity", mcp.Required(), mcp.Description("The node identity, e.g. 'sma'")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identity, _ := request.GetArguments()["identity"].(string)
		desc, err := s.service.Describe(identity)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(desc)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: reload_plugins (only when a reload hook is wired)
	if s.reload != nil {
		s.mcpServer.AddTool(mcp.NewTool("reload_plugins",
			mcp.WithDescription("Rescan the plugin roots and refresh the catalog."),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			loaded, failed := s.reload(ctx)
			return mcp.NewToolResultText(fmt.Sprintf(`{"loaded":%d,"failed":%d}`, loaded, failed)), nil
		})
	}
}

func (s *Server) registerResources() {
	// EXPOSE: quantflow://catalog
	s.mcpServer.AddResource(mcp.NewResource("quantflow://catalog", "Node Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		nodes := s.service.Catalog()
		if nodes == nil {
			nodes = []catalog.Node{}
		}
		jsonBytes, err := json.Marshal(map[string]any{"catalog": nodes})
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "quantflow://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
