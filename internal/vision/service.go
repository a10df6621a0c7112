package vision

import (
	"context"
	"image"
	"log/slog"
	"sort"
)

// Detector runs one kind of detection over an image.
type Detector interface {
	Detect(ctx context.Context, img image.Image, kind Kind) ([]Detection, error)
}

// Backend produces raw observations for a single kind.
type Backend interface {
	Observe(ctx context.Context, img image.Image) ([]Detection, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, img image.Image) ([]Detection, error)

func (f BackendFunc) Observe(ctx context.Context, img image.Image) ([]Detection, error) {
	return f(ctx, img)
}

// Policy filters and orders a backend's observations.
type Policy struct {
	// MinConfidence keeps only detections strictly above it.
	MinConfidence float64

	// MaxObservations caps the result. Zero means no cap.
	MaxObservations int

	// SortByConfidence orders the result highest first. Otherwise the
	// backend's order is kept.
	SortByConfidence bool
}

// DefaultPolicies returns the per-kind policies used when none are set.
func DefaultPolicies() map[Kind]Policy {
	return map[Kind]Policy{
		KindClassify:  {MinConfidence: 0.5, SortByConfidence: true},
		KindRectangle: {MinConfidence: 0.6, MaxObservations: 10},
		KindFace:      {MinConfidence: 0.6},
		KindAnimal:    {MinConfidence: 0.6},
		KindText:      {MinConfidence: 0.6},
	}
}

// Service implements Detector over registered backends.
type Service struct {
	backends map[Kind]Backend
	policies map[Kind]Policy
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBackend registers b for kind.
func WithBackend(kind Kind, b Backend) Option {
	return func(s *Service) { s.backends[kind] = b }
}

// WithPolicy replaces the policy for kind.
func WithPolicy(kind Kind, p Policy) Option {
	return func(s *Service) { s.policies[kind] = p }
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service with the default policies and no backends.
func New(opts ...Option) *Service {
	s := &Service{
		backends: make(map[Kind]Backend),
		policies: DefaultPolicies(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds or replaces the backend for kind.
func (s *Service) Register(kind Kind, b Backend) {
	s.backends[kind] = b
}

// Supports reports whether a backend is registered for kind.
func (s *Service) Supports(kind Kind) bool {
	_, ok := s.backends[kind]
	return ok
}

// Policy returns the policy applied to kind.
func (s *Service) Policy(kind Kind) Policy {
	return s.policies[kind]
}

// Detect runs the backend for kind and applies its policy. A backend that
// finds nothing yields ErrNoObservations; a policy that filters everything
// out yields an empty, successful result.
func (s *Service) Detect(ctx context.Context, img image.Image, kind Kind) ([]Detection, error) {
	if img == nil {
		return nil, &ServiceError{Kind: kind, Err: ErrNoImage}
	}
	backend, ok := s.backends[kind]
	if !ok {
		return nil, &ServiceError{Kind: kind, Err: ErrUnsupportedKind}
	}

	raw, err := backend.Observe(ctx, img)
	if err != nil {
		return nil, &ServiceError{Kind: kind, Err: err}
	}
	if len(raw) == 0 {
		return nil, &ServiceError{Kind: kind, Err: ErrNoObservations}
	}

	policy := s.policies[kind]
	kept := make([]Detection, 0, len(raw))
	for _, d := range raw {
		if d.Confidence > policy.MinConfidence {
			kept = append(kept, d)
		}
	}
	if policy.SortByConfidence {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Confidence > kept[j].Confidence
		})
	}
	if policy.MaxObservations > 0 && len(kept) > policy.MaxObservations {
		kept = kept[:policy.MaxObservations]
	}

	s.logger.Debug("detection finished",
		"kind", kind,
		"observations", len(raw),
		"kept", len(kept))
	return kept, nil
}
