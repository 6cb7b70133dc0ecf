package config

import (
	"context"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/edagent/pkg/log"
)

type LLMConfig struct {
	Provider string `env:"EDAGENT_LLM_PROVIDER" envDefault:"gemini"`
	Model    string `env:"EDAGENT_LLM_MODEL" envDefault:"gemini-1.5-flash"`
	APIKey   string `env:"EDAGENT_LLM_API_KEY"`
	// Only used by ollama and custom providers
	BaseURL string `env:"EDAGENT_LLM_BASE_URL"`

	CallTimeout    time.Duration `env:"EDAGENT_LLM_CALL_TIMEOUT" envDefault:"30s"`
	MaxAttempts    int           `env:"EDAGENT_LLM_MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"EDAGENT_LLM_RETRY_BASE_DELAY" envDefault:"1s"`

	mu sync.RWMutex
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func (c *LLMConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

func (c *LLMConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel accepts either "model" or "provider/model".
func (c *LLMConfig) SetModel(model string) error {
	provider, name := splitModel(model)
	if name == "" {
		return errEmptyModel
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if provider != "" {
		c.Provider = provider
	}
	c.Model = name
	return nil
}

func (c *LLMConfig) GetAPIKey() string {
	return c.APIKey
}

func (c *LLMConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c *LLMConfig) GetCallTimeout() time.Duration {
	return c.CallTimeout
}
