package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/edagent/internal/core"
)

// active pairs a live provider with the "provider/model" label it was built
// from, so readers never see a label that disagrees with the provider.
type active struct {
	provider Provider
	label    string
}

// DynamicProvider lets the model be switched at runtime. Calls already in
// flight finish on the provider they started with.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Pointer[active]
	mu      sync.Mutex
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{config: config}
	if err := d.rebuild(ctx); err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}
	return d, nil
}

// rebuild must be called with mu held, or before d is shared.
func (d *DynamicProvider) rebuild(ctx context.Context) error {
	p, err := NewProvider(ctx, d.config)
	if err != nil {
		return err
	}
	d.current.Store(&active{
		provider: p,
		label:    d.config.GetProvider() + "/" + d.config.GetModel(),
	})
	return nil
}

func (d *DynamicProvider) Generate(ctx context.Context, prompt string, profile core.ModelProfile) (string, error) {
	return d.current.Load().provider.Generate(ctx, prompt, profile)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	return d.current.Load().provider.Models(ctx)
}

// GetModel returns "provider/model" of the live provider.
func (d *DynamicProvider) GetModel() string {
	return d.current.Load().label
}

// SetModel accepts "provider/model" or a bare model for the current
// provider. On failure the previous provider stays live.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous := d.current.Load().label
	if err := d.config.SetModel(model); err != nil {
		return err
	}

	if err := d.rebuild(ctx); err != nil {
		_ = d.config.SetModel(previous)
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}
