package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/pkg/env"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	path := config.GetRuntimePath()
	if err := os.MkdirAll(path, 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	envPath := filepath.Join(path, ".env")
	if _, err := os.Stat(envPath); err == nil {
		s.err = fmt.Errorf(".env file already exists at %s", envPath)
		return s, nil
	}

	content, err := renderEnv(state)
	if err != nil {
		s.err = err
		return s, nil
	}
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		s.err = err
		return s, nil
	}

	state.EnvPath = envPath
	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

var channelEnvKeys = []struct {
	channel string
	key     string
}{
	{ChannelCLI, "EDAGENT_ENABLE_CLI"},
	{ChannelTelegram, "EDAGENT_ENABLE_TELEGRAM"},
	{ChannelHTTP, "EDAGENT_ENABLE_HTTP"},
	{ChannelMCP, "EDAGENT_ENABLE_MCP"},
}

// renderEnv produces the .env content. Channel toggles are written
// explicitly because false values would otherwise fall back to defaults.
func renderEnv(state *InstallState) (string, error) {
	var b strings.Builder
	for _, section := range []struct {
		title string
		cfg   any
	}{
		{"LLM", state.LLM},
		{"YouTube", state.YouTube},
		{"Telegram", state.Telegram},
	} {
		content, err := env.MarshalEnv(section.cfg)
		if err != nil {
			return "", fmt.Errorf("failed to render %s config: %w", section.title, err)
		}
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "# %s\n%s\n", section.title, content)
	}

	b.WriteString("# Channels\n")
	for _, c := range channelEnvKeys {
		fmt.Fprintf(&b, "%s=%s\n", c.key, strconv.FormatBool(state.Channels[c.channel]))
	}
	return b.String(), nil
}
