package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills derived values before the config is written.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	if state.LLM.Model == "" {
		state.LLM.Model = defaultModels[state.LLM.Provider]
	}
	if state.Telegram.Token == "" {
		state.Channels[ChannelTelegram] = false
	}
	enabled := false
	for _, on := range state.Channels {
		enabled = enabled || on
	}
	if !enabled {
		state.Channels[ChannelCLI] = true
	}
}
