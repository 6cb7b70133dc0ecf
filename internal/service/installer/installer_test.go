package installer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProviderStep(t *testing.T) {
	state := NewInstallState()
	var step Step = NewProviderStep()

	step, _ = step.Update(key("j"), state, 80, 24)
	step, _ = step.Update(key("j"), state, 80, 24)
	require.NotNil(t, step)

	next, _ := step.Update(key("enter"), state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "anthropic", state.LLM.Provider)
}

func TestChannelStep(t *testing.T) {
	state := NewInstallState()
	var step Step = NewChannelStep()

	// deselect CLI, then enter is refused while nothing is selected
	step, _ = step.Update(key(" "), state, 80, 24)
	step, _ = step.Update(key("enter"), state, 80, 24)
	require.NotNil(t, step)

	step, _ = step.Update(key("j"), state, 80, 24)
	step, _ = step.Update(key("x"), state, 80, 24)
	step, _ = step.Update(key("j"), state, 80, 24)
	step, _ = step.Update(key("x"), state, 80, 24)
	next, _ := step.Update(key("enter"), state, 80, 24)
	assert.Nil(t, next)

	assert.Equal(t, map[string]bool{
		ChannelCLI:      false,
		ChannelTelegram: true,
		ChannelHTTP:     true,
		ChannelMCP:      false,
	}, state.Channels)
}

func TestParseUserIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{name: "empty allows everyone", input: "  ", want: []int64{}},
		{name: "comma separated", input: "1, 22,333", want: []int64{1, 22, 333}},
		{name: "space separated", input: "7 8", want: []int64{7, 8}},
		{name: "not a number", input: "12,abc", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUserIDs(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinalize(t *testing.T) {
	state := NewInstallState()
	state.LLM.Provider = "gemini"
	state.Channels[ChannelTelegram] = true

	finalize(state)

	assert.Equal(t, "gemini-1.5-flash", state.LLM.Model)
	assert.False(t, state.Channels[ChannelTelegram], "telegram needs a token")
	assert.True(t, state.Channels[ChannelCLI], "cli is the fallback channel")
}

func TestRenderEnv(t *testing.T) {
	state := NewInstallState()
	state.LLM.Provider = "ollama"
	state.LLM.Model = "llama3.1"
	state.LLM.BaseURL = "http://localhost:11434"
	state.Telegram.Token = "123:abc"
	state.Telegram.AllowedIDs = []int64{42, 43}
	state.Channels[ChannelTelegram] = true
	state.Channels[ChannelHTTP] = true

	out, err := renderEnv(state)
	require.NoError(t, err)

	assert.Contains(t, out, "# LLM\nEDAGENT_LLM_PROVIDER=ollama\nEDAGENT_LLM_MODEL=llama3.1\n")
	assert.Contains(t, out, "EDAGENT_LLM_BASE_URL=http://localhost:11434\n")
	assert.NotContains(t, out, "EDAGENT_LLM_API_KEY")
	assert.NotContains(t, out, "# YouTube")
	assert.Contains(t, out, "EDAGENT_TELEGRAM_TOKEN=123:abc\n")
	assert.Contains(t, out, "EDAGENT_TELEGRAM_ALLOWED_IDS=42,43\n")
	assert.Contains(t, out, "EDAGENT_ENABLE_CLI=false\n")
	assert.Contains(t, out, "EDAGENT_ENABLE_TELEGRAM=true\n")
	assert.Contains(t, out, "EDAGENT_ENABLE_HTTP=true\n")
	assert.Contains(t, out, "EDAGENT_ENABLE_MCP=false\n")
}

// doneOnEnter finishes on enter and stays put otherwise.
type doneOnEnter struct{ label string }

func (d *doneOnEnter) Init() tea.Cmd { return nil }

func (d *doneOnEnter) Update(msg tea.Msg, _ *InstallState, _, _ int) (Step, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		return nil, nil
	}
	return d, nil
}

func (d *doneOnEnter) View(*InstallState) string { return d.label }

func TestWizardModel(t *testing.T) {
	m := model{
		steps: []Step{&doneOnEnter{label: "first"}, &doneOnEnter{label: "second"}},
		state: NewInstallState(),
	}

	assert.Contains(t, m.View(), "first")
	assert.Contains(t, m.View(), "step 1 of 2")

	next, _ := m.Update(key("x"))
	m = next.(model)
	assert.Equal(t, 0, m.currentStep)

	next, _ = m.Update(key("enter"))
	m = next.(model)
	assert.Equal(t, 1, m.currentStep)
	assert.Contains(t, m.View(), "second")

	next, _ = m.Update(key("enter"))
	m = next.(model)
	assert.Equal(t, 2, m.currentStep)
	assert.Equal(t, "Configuration complete!\n", m.View())
}

func TestWizardModel_CtrlC(t *testing.T) {
	m := model{steps: []Step{&doneOnEnter{}}, state: NewInstallState()}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(model)
	assert.True(t, m.quitting)
	assert.Equal(t, "Installation cancelled.\n", m.View())
}

func TestWizardModel_SkipsStepsThatDoNotApply(t *testing.T) {
	m := model{
		steps: []Step{
			&doneOnEnter{label: "provider"},
			NewBaseURLStep(),
			NewTelegramTokenStep(),
			NewTelegramUsersStep(),
			&doneOnEnter{label: "last"},
		},
		state: NewInstallState(),
	}
	m.state.LLM.Provider = "gemini"

	next, _ := m.Update(key("enter"))
	m = next.(model)
	assert.Equal(t, 4, m.currentStep)
	assert.Contains(t, m.View(), "last")
}

func TestWizardModel_TelegramStepsShownWhenSelected(t *testing.T) {
	m := model{
		steps: []Step{&doneOnEnter{}, NewTelegramTokenStep(), NewTelegramUsersStep()},
		state: NewInstallState(),
	}
	m.state.Channels[ChannelTelegram] = true

	next, _ := m.Update(key("enter"))
	m = next.(model)
	assert.Equal(t, 1, m.currentStep)
}
