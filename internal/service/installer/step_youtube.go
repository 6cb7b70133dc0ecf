package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// YouTubeKeyStep collects the optional YouTube Data API key. Without it the
// coach recommends catalog courses only.
type YouTubeKeyStep struct {
	input textinput.Model
}

func NewYouTubeKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "Optional - press Enter to skip"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return &YouTubeKeyStep{input: ti}
}

func (s *YouTubeKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *YouTubeKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.YouTube.APIKey = strings.TrimSpace(s.input.Value())
		return nil, nil
	}
	return s, cmd
}

func (s *YouTubeKeyStep) View(state *InstallState) string {
	return "Enter your YouTube Data API key (enables video recommendations):\n\n" +
		s.input.View() + "\n\n(press enter to confirm)\n"
}
