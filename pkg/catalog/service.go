package catalog

import (
	"log/slog"

	"github.com/meaigood001/panda-quantflow/internal/logging"
	"github.com/meaigood001/panda-quantflow/pkg/domain"
)

// Source is the registry view the service reads from.
type Source interface {
	All() map[string]domain.Descriptor
	Get(identity string) (domain.Descriptor, error)
}

// Service is the read-only query surface over the registry. It holds no
// state of its own: every call renders a fresh tree from a registry
// snapshot, so a query issued before loading completes simply returns a
// partial (or empty) catalog.
type Service struct {
	source Source
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger injects the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a catalog service over the given registry.
func NewService(source Source, opts ...ServiceOption) *Service {
	s := &Service{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the current group tree. It never fails: an empty
// registry yields an empty (non-nil) sequence.
func (s *Service) Catalog() []Node {
	snapshot := s.source.All()
	descriptors := make([]domain.Descriptor, 0, len(snapshot))
	for _, d := range snapshot {
		descriptors = append(descriptors, d)
	}
	s.logger.Debug("rendering catalog", "nodes", len(descriptors))
	return Build(descriptors)
}

// Describe returns the descriptor registered under identity.
func (s *Service) Describe(identity string) (domain.Descriptor, error) {
	return s.source.Get(identity)
}
