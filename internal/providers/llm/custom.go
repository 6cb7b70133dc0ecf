package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
)

// CustomOpenAI talks to a self-hosted server exposing the OpenAI chat API,
// such as vLLM, LM Studio or llama.cpp. Users often paste the base URL with
// its /v1 suffix, so it is stripped.
type CustomOpenAI struct {
	*OpenAICompatible
}

func NewCustomOpenAI(baseURL, apiKey, model string) *CustomOpenAI {
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/v1")

	cfg := OpenAICompatibleConfig{
		Name:    "custom",
		BaseURL: baseURL,
		Model:   model,
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
		cfg.AuthHeader = "Authorization"
		cfg.AuthPrefix = "Bearer "
	}
	return &CustomOpenAI{OpenAICompatible: NewOpenAICompatible(cfg)}
}

// Models lists the server's models. Servers that serve a single model often
// lack the listing endpoint; the configured model is reported instead.
func (c *CustomOpenAI) Models(ctx context.Context) ([]core.Model, error) {
	models, err := c.listModels(ctx)
	var pe *core.ProviderError
	if errors.As(err, &pe) && pe.StatusCode == http.StatusNotFound && c.model != "" {
		return []core.Model{{ID: c.model, Name: c.model}}, nil
	}
	return models, err
}
