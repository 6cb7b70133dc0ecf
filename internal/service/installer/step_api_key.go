package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var keyPlaceholders = map[string]string{
	"gemini":     "AIza...",
	"openai":     "sk-...",
	"anthropic":  "sk-ant-...",
	"openrouter": "sk-or-v1-...",
}

// APIKeyStep collects the provider API key. It is optional for Ollama and
// custom endpoints.
type APIKeyStep struct {
	input      textinput.Model
	provider   string
	isOptional bool
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) initProvider(state *InstallState) {
	s.provider = state.LLM.Provider
	s.isOptional = s.provider == "ollama" || s.provider == "custom"

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'
	s.input.Placeholder = keyPlaceholders[s.provider]
	if s.isOptional {
		s.input.Placeholder = "Optional - press Enter to skip"
	}
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		s.initProvider(state)
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.isOptional {
			return s, cmd
		}
		state.LLM.APIKey = val
		return nil, nil
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		return "Loading...\n"
	}

	optionalHint := ""
	if s.isOptional {
		optionalHint = " (optional - press Enter to skip)"
	}
	return fmt.Sprintf("Enter your %s API key%s:\n\n%s\n\n(press enter to confirm)\n",
		s.provider, optionalHint, s.input.View())
}
