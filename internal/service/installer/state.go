package installer

import (
	"github.com/sandevgo/edagent/internal/config"
)

// Transport channels the wizard can enable.
const (
	ChannelCLI      = "cli"
	ChannelTelegram = "telegram"
	ChannelHTTP     = "http"
	ChannelMCP      = "mcp"
)

// InstallState collects the answers; SaveEnvStep renders it to .env.
type InstallState struct {
	LLM      *config.LLMConfig
	YouTube  *config.YouTubeConfig
	Telegram *config.TelegramConfig
	Channels map[string]bool
	EnvPath  string
}

func NewInstallState() *InstallState {
	return &InstallState{
		LLM:      &config.LLMConfig{},
		YouTube:  &config.YouTubeConfig{},
		Telegram: &config.TelegramConfig{},
		Channels: make(map[string]bool),
	}
}
