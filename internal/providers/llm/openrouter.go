package llm

import (
	"cmp"
	"context"
	"net/http"
	"slices"

	"github.com/sandevgo/edagent/internal/core"
)

const openRouterBaseURL = "https://openrouter.ai/api"

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(baseURL, apiKey, model string) *OpenRouter {
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "openrouter",
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.AppRepositoryURL,
				"X-Title":      core.AppName,
			},
		}),
	}
}

type openRouterModel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length"`
	Pricing       struct {
		Prompt     string `json:"prompt"`
		Completion string `json:"completion"`
	} `json:"pricing"`
}

func (m openRouterModel) free() bool {
	return m.Pricing.Prompt == "0" && m.Pricing.Completion == "0"
}

// Models lists the catalog with free models first, then by id. Free models
// get a "(free)" suffix on their display name.
func (o *OpenRouter) Models(ctx context.Context) ([]core.Model, error) {
	var result struct {
		Data []openRouterModel `json:"data"`
	}
	if err := o.call(ctx, http.MethodGet, "/v1/models", nil, o.headers(), &result); err != nil {
		return nil, err
	}

	slices.SortStableFunc(result.Data, func(a, b openRouterModel) int {
		if a.free() != b.free() {
			if a.free() {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})

	models := make([]core.Model, len(result.Data))
	for i, m := range result.Data {
		name := cmp.Or(m.Name, m.ID)
		if m.free() {
			name += " (free)"
		}
		models[i] = core.Model{ID: m.ID, Name: name, ContextLength: m.ContextLength}
	}
	return models, nil
}
