package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var channelChoices = []struct {
	id    string
	title string
}{
	{id: ChannelCLI, title: "Interactive CLI"},
	{id: ChannelTelegram, title: "Telegram bot"},
	{id: ChannelHTTP, title: "HTTP API"},
	{id: ChannelMCP, title: "MCP server"},
}

// ChannelStep toggles the transports to enable. CLI is preselected.
type ChannelStep struct {
	cursor   int
	selected map[string]bool
}

func NewChannelStep() Step {
	return &ChannelStep{
		selected: map[string]bool{ChannelCLI: true},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(channelChoices)-1 {
				s.cursor++
			}
		case " ", "x":
			id := channelChoices[s.cursor].id
			s.selected[id] = !s.selected[id]
		case "enter":
			if !s.any() {
				return s, nil
			}
			for _, c := range channelChoices {
				state.Channels[c.id] = s.selected[c.id]
			}
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChannelStep) any() bool {
	for _, on := range s.selected {
		if on {
			return true
		}
	}
	return false
}

func (s *ChannelStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the channels to enable:\n\n")
	for i, choice := range channelChoices {
		mark := "[ ]"
		if s.selected[choice.id] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, choice.title)
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n(space to toggle, enter to confirm, ctrl+c to quit)\n")
	return b.String()
}
