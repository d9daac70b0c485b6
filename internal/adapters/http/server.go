// Package http exposes the node catalog over HTTP for the visual editor.
//
// The surface is read-only and total: the catalog endpoint always answers
// with a (possibly empty) tree, and internal load errors are never
// surfaced to callers.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	quantflow "github.com/meaigood001/panda-quantflow"
	"github.com/meaigood001/panda-quantflow/internal/logging"
	"github.com/meaigood001/panda-quantflow/internal/metrics"
	"github.com/meaigood001/panda-quantflow/pkg/catalog"
	"github.com/meaigood001/panda-quantflow/pkg/domain"
	"github.com/meaigood001/panda-quantflow/pkg/ports"
)

// Catalog is the query surface the server serves from.
type Catalog interface {
	Catalog() []catalog.Node
	Describe(identity string) (domain.Descriptor, error)
}

// Server handles the catalog API routes.
type Server struct {
	service Catalog
	cache   ports.CatalogCache
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCache serves the catalog from a snapshot cache, rebuilding on miss.
func WithCache(cache ports.CatalogCache) Option {
	return func(s *Server) {
		s.cache = cache
	}
}

// WithLogger injects the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the catalog service.
func NewHandler(service Catalog, opts ...Option) http.Handler {
	s := &Server{
		service: service,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/api/v1/catalog", s.GetCatalog)
	r.Get("/api/v1/nodes/{identity}", s.GetNode)
	r.Handle("/metrics", metrics.Handler())

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return enableCORS(r)
}

// enableCORS opens the API to the browser-based editor.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>QuantFlow Catalog API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetCatalog handles the GET /api/v1/catalog request.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	metrics.CatalogRequests.Inc()

	if s.cache != nil {
		if payload, ok, err := s.cache.Get(r.Context()); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		} else if err != nil {
			s.logger.Warn("catalog cache read failed", "err", err)
		}
	}

	nodes := s.service.Catalog()
	if nodes == nil {
		nodes = []catalog.Node{}
	}

	payload, err := json.Marshal(map[string]any{"catalog": nodes})
	if err != nil {
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		s.logger.Error("catalog encode failed", "err", err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), payload); err != nil {
			s.logger.Warn("catalog cache write failed", "err", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// GetNode handles the GET /api/v1/nodes/{identity} request.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")

	desc, err := s.service.Describe(identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "node not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		s.logger.Error("node lookup failed", "identity", identity, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, desc)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "quantflow-catalog",
		"version":     quantflow.Version,
		"api_version": apiVersion,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
