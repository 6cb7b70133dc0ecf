package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultOllamaURL = "http://localhost:11434"

// BaseURLStep asks for the endpoint of self-hosted providers. Hosted
// providers skip it.
type BaseURLStep struct {
	input    textinput.Model
	prepared bool
	optional bool
}

func NewBaseURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Width = 50
	return &BaseURLStep{input: ti}
}

func (s *BaseURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *BaseURLStep) Skip(state *InstallState) bool {
	p := state.LLM.Provider
	return p != "ollama" && p != "custom"
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.prepared {
		switch state.LLM.Provider {
		case "ollama":
			s.optional = true
			s.input.Placeholder = defaultOllamaURL
		case "custom":
			s.input.Placeholder = "https://api.example.com"
		default:
			return nil, nil
		}
		s.prepared = true
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimRight(strings.TrimSpace(s.input.Value()), "/")
		if val == "" && s.optional {
			val = defaultOllamaURL
		}
		if val != "" {
			state.LLM.BaseURL = val
			return nil, nil
		}
	}
	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	hint := ""
	if s.optional {
		hint = " (press Enter for " + defaultOllamaURL + ")"
	}
	return "Enter the provider base URL" + hint + ":\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
