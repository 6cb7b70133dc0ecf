package state

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

type modelSwitcher interface {
	GetModel() string
	SetModel(ctx context.Context, model string) error
}

// GlobalState holds process-wide settings that commands may change at runtime.
// Model switches are serialized; a switch affects every user.
type GlobalState struct {
	mu        sync.Mutex
	provider  modelSwitcher
	changedAt time.Time
	now       func() time.Time
}

func NewGlobalState(provider modelSwitcher) *GlobalState {
	return &GlobalState{
		provider: provider,
		now:      time.Now,
	}
}

func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return &core.ValidationError{Field: "model", Reason: "empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.provider.GetModel()
	if err := s.provider.SetModel(ctx, model); err != nil {
		return err
	}
	s.changedAt = s.now()

	log.FromCtx(ctx).Info().
		Str("from", previous).
		Str("to", s.provider.GetModel()).
		Msg("model switched")
	return nil
}

// ModelChangedAt is zero until the first successful switch.
func (s *GlobalState) ModelChangedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changedAt
}
