package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSwitcher struct {
	model string
	err   error
}

func (f *fakeSwitcher) GetModel() string { return f.model }

func (f *fakeSwitcher) SetModel(_ context.Context, model string) error {
	if f.err != nil {
		return f.err
	}
	f.model = model
	return nil
}

func TestGlobalState_ChangeModel(t *testing.T) {
	sw := &fakeSwitcher{model: "gemini/gemini-1.5-flash"}
	gs := NewGlobalState(sw)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gs.now = func() time.Time { return fixed }

	assert.True(t, gs.ModelChangedAt().IsZero())

	require.NoError(t, gs.ChangeModel(context.Background(), "  openai/gpt-4o-mini "))
	assert.Equal(t, "openai/gpt-4o-mini", sw.model)
	assert.Equal(t, fixed, gs.ModelChangedAt())
}

func TestGlobalState_ChangeModelErrors(t *testing.T) {
	sw := &fakeSwitcher{model: "gemini/gemini-1.5-flash"}
	gs := NewGlobalState(sw)

	var verr *core.ValidationError
	assert.ErrorAs(t, gs.ChangeModel(context.Background(), "   "), &verr)

	sw.err = errors.New("unknown llm provider")
	assert.EqualError(t, gs.ChangeModel(context.Background(), "nope/x"), "unknown llm provider")
	assert.True(t, gs.ModelChangedAt().IsZero())
	assert.Equal(t, "gemini/gemini-1.5-flash", sw.model)
}
