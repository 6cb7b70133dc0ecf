package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/edagent/pkg/log"
)

type HTTPConfig struct {
	Addr            string        `env:"EDAGENT_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"EDAGENT_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}

type MCPConfig struct {
	Addr string `env:"EDAGENT_MCP_ADDR" envDefault:":8090"`
}

func NewMCPConfig(ctx context.Context) *MCPConfig {
	c := &MCPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse MCP config")
	}
	return c
}
