package app

import (
	"context"
	"sync"

	"go-ball-capture/internal/component"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FallbackSource loads models through a primary source and switches a role to
// the fallback source when its file cannot be fetched. The window frontend
// uses it so a checkout without model files still shows a playable scene.
type FallbackSource struct {
	primary  ModelSource
	fallback ModelSource
	logger   *zap.Logger

	mu       sync.Mutex
	replaced map[types.Role]bool
}

func NewFallbackSource(primary, fallback ModelSource, logger *zap.Logger) *FallbackSource {
	if primary == nil || fallback == nil {
		panic("fallback source needs both sources")
	}
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		replaced: make(map[types.Role]bool),
	}
}

// Fetch runs on a worker goroutine. Cancellation is passed through as is.
func (s *FallbackSource) Fetch(ctx context.Context, role types.Role, spec config.ModelSpec) error {
	err := s.primary.Fetch(ctx, role, spec)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.setReplaced(role, false)
		return err
	}

	s.logger.Warn("model file unusable, using procedural model",
		zap.String("role", string(role)),
		zap.String("path", spec.Path),
		zap.Error(err))
	s.setReplaced(role, true)
	return s.fallback.Fetch(ctx, role, spec)
}

func (s *FallbackSource) Upload(role types.Role, spec config.ModelSpec) ([]*component.MeshNode, error) {
	if s.Replaced(role) {
		return s.fallback.Upload(role, spec)
	}
	return s.primary.Upload(role, spec)
}

func (s *FallbackSource) Release(role types.Role) {
	s.primary.Release(role)
	s.fallback.Release(role)
}

// Replaced reports whether the last fetch of role fell back.
func (s *FallbackSource) Replaced(role types.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaced[role]
}

func (s *FallbackSource) setReplaced(role types.Role, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced[role] = replaced
}
