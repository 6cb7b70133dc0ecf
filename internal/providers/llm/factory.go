package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

// Provider is a text generator that can also enumerate its models.
type Provider interface {
	core.TextGenerator
	core.ModelLister
}

// NewProvider creates the Provider selected by configuration. An empty base
// URL means the vendor's public endpoint.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (Provider, error) {
	name, model := cfg.GetProvider(), cfg.GetModel()

	log.FromCtx(ctx).Info().
		Str("provider", name).
		Str("model", model).
		Msg("starting llm provider")

	switch name {
	case "gemini":
		return NewGemini(cfg.GetBaseURL(), cfg.GetAPIKey(), model), nil
	case "openai":
		return NewOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), model), nil
	case "anthropic":
		return NewAnthropic(cfg.GetBaseURL(), cfg.GetAPIKey(), model), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetBaseURL(), cfg.GetAPIKey(), model), nil
	case "ollama":
		return NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), model), nil
	case "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("custom llm provider requires a base url")
		}
		return NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", name)
	}
}
