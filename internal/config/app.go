package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/edagent/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"EDAGENT_RUNTIME_PATH" envDefault:".edagent"`

	// Transport Flags
	EnableTelegram bool `env:"EDAGENT_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"EDAGENT_ENABLE_CLI" envDefault:"true"`
	EnableHTTP     bool `env:"EDAGENT_ENABLE_HTTP" envDefault:"false"`
	EnableMCP      bool `env:"EDAGENT_ENABLE_MCP" envDefault:"false"`

	// Conversation
	TurnTimeout   time.Duration `env:"EDAGENT_TURN_TIMEOUT" envDefault:"45s"`
	StateTTL      time.Duration `env:"EDAGENT_STATE_TTL" envDefault:"30m"`
	StateMaxUsers int           `env:"EDAGENT_STATE_MAX_USERS" envDefault:"1024"`

	// Ranking
	MinQuality          float64 `env:"EDAGENT_MIN_QUALITY" envDefault:"0.3"`
	RecommendationLimit int     `env:"EDAGENT_RECOMMENDATION_LIMIT" envDefault:"5"`

	// Prompt budget for previous answers and history
	PromptContextTokens int `env:"EDAGENT_PROMPT_CONTEXT_TOKENS" envDefault:"1500"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = GetRuntimePath()
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "edagent.db")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
