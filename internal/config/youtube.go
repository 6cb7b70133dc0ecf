package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/edagent/pkg/log"
)

type YouTubeConfig struct {
	APIKey       string        `env:"EDAGENT_YOUTUBE_API_KEY"`
	BaseURL      string        `env:"EDAGENT_YOUTUBE_BASE_URL" envDefault:"https://www.googleapis.com/youtube/v3"`
	MaxResults   int           `env:"EDAGENT_YOUTUBE_MAX_RESULTS" envDefault:"10"`
	MinViewCount int64         `env:"EDAGENT_YOUTUBE_MIN_VIEWS" envDefault:"100"`
	Timeout      time.Duration `env:"EDAGENT_YOUTUBE_TIMEOUT" envDefault:"15s"`
	CacheTTL     time.Duration `env:"EDAGENT_CONTENT_CACHE_TTL" envDefault:"1h"`
	CacheSize    int           `env:"EDAGENT_CONTENT_CACHE_SIZE" envDefault:"256"`
}

func NewYouTubeConfig(ctx context.Context) *YouTubeConfig {
	c := &YouTubeConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse YouTube config")
	}
	return c
}

func (c YouTubeConfig) Enabled() bool {
	return c.APIKey != ""
}
