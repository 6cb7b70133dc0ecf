package config

import (
	"context"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/edagent/pkg/log"
)

// TelegramConfig restricts the bot to AllowedIDs when the list is non-empty.
type TelegramConfig struct {
	Token       string        `env:"EDAGENT_TELEGRAM_TOKEN,required,notEmpty"`
	AllowedIDs  []int64       `env:"EDAGENT_TELEGRAM_ALLOWED_IDS" envSeparator:","`
	PollTimeout time.Duration `env:"EDAGENT_TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	if len(c.AllowedIDs) == 0 {
		log.FromCtx(ctx).Warn().Msg("EDAGENT_TELEGRAM_ALLOWED_IDS is empty, the bot answers everyone")
	}
	return c
}

func (c TelegramConfig) IsAllowed(id int64) bool {
	return len(c.AllowedIDs) == 0 || slices.Contains(c.AllowedIDs, id)
}

func (c TelegramConfig) GetPollTimeout() time.Duration {
	if c.PollTimeout <= 0 {
		return 10 * time.Second
	}
	return c.PollTimeout
}
