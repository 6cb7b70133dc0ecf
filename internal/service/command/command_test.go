package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/orchestrator"
	"github.com/sandevgo/edagent/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConv struct {
	snap  orchestrator.StateSnapshot
	reset []string
}

func (f *fakeConv) Status(userID string) orchestrator.StateSnapshot {
	s := f.snap
	s.UserID = userID
	return s
}

func (f *fakeConv) Reset(userID string) { f.reset = append(f.reset, userID) }

type fakeProfiles struct {
	profile core.UserProfile
	err     error
}

func (f fakeProfiles) GetProfile(ctx context.Context, userID string) (core.UserProfile, error) {
	return f.profile, f.err
}

type fakeProviderConfig struct {
	provider, model string
}

func (f *fakeProviderConfig) GetProvider() string           { return f.provider }
func (f *fakeProviderConfig) GetModel() string              { return f.model }
func (f *fakeProviderConfig) GetAPIKey() string             { return "" }
func (f *fakeProviderConfig) GetBaseURL() string            { return "" }
func (f *fakeProviderConfig) GetCallTimeout() time.Duration { return time.Second }
func (f *fakeProviderConfig) SetModel(model string) error {
	f.model = model
	return nil
}

type fakeChanger struct{ cfg *fakeProviderConfig }

func (f fakeChanger) ChangeModel(ctx context.Context, model string) error {
	if model == "bad" {
		return errors.New("unknown llm provider")
	}
	return f.cfg.SetModel(model)
}

func (f fakeChanger) ModelChangedAt() time.Time { return time.Time{} }

type fakeLister struct{ models []core.Model }

func (f fakeLister) Models(ctx context.Context) ([]core.Model, error) { return f.models, nil }

func newTestRouter(conv *fakeConv, profiles fakeProfiles) (*Router, *fakeProviderConfig) {
	cfg := &fakeProviderConfig{provider: "gemini", model: "gemini-1.5-flash"}
	lister := fakeLister{models: []core.Model{{ID: "gemini-1.5-pro"}, {ID: "gemini-1.5-flash"}}}
	return New(NewCommands(cfg, fakeChanger{cfg: cfg}, lister, conv, profiles)), cfg
}

func TestRouter_Execute(t *testing.T) {
	conv := &fakeConv{snap: orchestrator.StateSnapshot{
		State:        state.ModeInAssessment,
		MessageCount: 4,
		Assessment:   &orchestrator.AssessmentStatus{SkillArea: "Programming", Answered: 3, TotalQuestions: 7, Progress: 3.0 / 7},
	}}
	profile := core.NewUserProfile("u1")
	profile.Skills["Python"] = core.SkillRecord{Level: core.SkillIntermediate, Confidence: 0.9}
	profile.CareerGoals = []string{"backend developer"}
	r, cfg := newTestRouter(conv, fakeProfiles{profile: profile})

	tests := []struct {
		name         string
		input        string
		wantHandled  bool
		wantContains []string
	}{
		{name: "plain text is not a command", input: "hello there", wantHandled: false},
		{name: "status", input: "/status", wantHandled: true, wantContains: []string{"IN_ASSESSMENT", "3/7", "Programming"}},
		{name: "bot suffix", input: "/status@edagent_bot", wantHandled: true, wantContains: []string{"IN_ASSESSMENT"}},
		{name: "profile", input: "/profile", wantHandled: true, wantContains: []string{"Python", "intermediate", "backend developer"}},
		{name: "help lists everything", input: "/help", wantHandled: true, wantContains: []string{"/model", "/profile", "/reset", "/status", "/help"}},
		{name: "unknown", input: "/dance", wantHandled: true, wantContains: []string{"Unknown command: /dance"}},
		{name: "model show", input: "/model", wantHandled: true, wantContains: []string{"gemini-1.5-flash", "never", "Usage"}},
		{name: "model list", input: "/model list", wantHandled: true, wantContains: []string{"gemini-1.5-pro", "Count"}},
		{name: "model change fails", input: "/model bad", wantHandled: true, wantContains: []string{"/model failed", "unknown llm provider"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, handled := r.Execute(context.Background(), "u1", tt.input)
			assert.Equal(t, tt.wantHandled, handled)
			for _, s := range tt.wantContains {
				assert.Contains(t, out, s)
			}
		})
	}

	out, handled := r.Execute(context.Background(), "u1", "/model gemini-1.5-pro")
	require.True(t, handled)
	assert.Contains(t, out, "gemini/gemini-1.5-pro")
	assert.Equal(t, "gemini-1.5-pro", cfg.model)
}

func TestResetCommand(t *testing.T) {
	conv := &fakeConv{}
	r, _ := newTestRouter(conv, fakeProfiles{})

	out, handled := r.Execute(context.Background(), "u7", "/reset")
	require.True(t, handled)
	assert.Contains(t, out, "Conversation reset")
	assert.Equal(t, []string{"u7"}, conv.reset)
}

func TestProfileCommand_EmptyAndError(t *testing.T) {
	r, _ := newTestRouter(&fakeConv{}, fakeProfiles{profile: core.NewUserProfile("u1")})
	out, _ := r.Execute(context.Background(), "u1", "/profile")
	assert.Contains(t, out, "none assessed yet")
	assert.Contains(t, out, "none set")

	r, _ = newTestRouter(&fakeConv{}, fakeProfiles{err: errors.New("disk gone")})
	out, _ = r.Execute(context.Background(), "u1", "/profile")
	assert.Contains(t, out, "disk gone")
}

func TestListCommands_Sorted(t *testing.T) {
	r, _ := newTestRouter(&fakeConv{}, fakeProfiles{})
	var names []string
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"help", "model", "profile", "reset", "status"}, names)
}
