package cli

import (
	"context"
	"testing"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestRenderResponse(t *testing.T) {
	tests := []struct {
		name     string
		resp     core.Response
		contains []string
		absent   []string
	}{
		{
			name:     "plain message",
			resp:     core.Response{Message: "  Hello there  ", Type: core.ResponseText},
			contains: []string{"Hello there"},
			absent:   []string{"Try:"},
		},
		{
			name: "suggested actions listed",
			resp: core.Response{
				Message:          "Done.",
				Type:             core.ResponseText,
				SuggestedActions: []string{"Take a skill assessment", "Get learning resources"},
			},
			contains: []string{"Done.", "Try:", "> Take a skill assessment", "> Get learning resources"},
		},
		{
			name: "assessment progress shown",
			resp: core.Response{
				Message:  "Question 2 of 5",
				Type:     core.ResponseAssessment,
				Metadata: map[string]any{"progress": 0.2},
			},
			contains: []string{"assessment 20% complete"},
		},
		{
			name: "progress ignored outside assessments",
			resp: core.Response{
				Message:  "ok",
				Type:     core.ResponseText,
				Metadata: map[string]any{"progress": 0.2},
			},
			absent: []string{"complete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderResponse(tt.resp)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

type stubCoach struct{ got []string }

func (s *stubCoach) HandleMessage(_ context.Context, userID, text string) core.Response {
	s.got = append(s.got, userID+":"+text)
	return core.Response{Message: "coach says hi", Type: core.ResponseText}
}

type stubRouter struct{}

func (stubRouter) Execute(_ context.Context, _, input string) (string, bool) {
	if input == "/status" {
		return "state: IDLE", true
	}
	return "", false
}

func (stubRouter) ListCommands() []core.Command { return nil }

func TestReadLineReply(t *testing.T) {
	coach := &stubCoach{}
	r := &ReadLine{coach: coach, router: stubRouter{}}

	assert.Equal(t, "state: IDLE", r.reply(context.Background(), "/status"))
	assert.Empty(t, coach.got)

	assert.Contains(t, r.reply(context.Background(), "hello"), "coach says hi")
	assert.Equal(t, []string{"cli-local:hello"}, coach.got)
}
