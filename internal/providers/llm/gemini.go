package llm

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini calls the Generative Language REST API. The key travels in a
// header so it never shows up in logged URLs.
type Gemini struct {
	baseProvider
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func NewGemini(baseURL, apiKey, model string) *Gemini {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &Gemini{
		baseProvider: newBaseProvider("gemini", baseURL, apiKey, model),
	}
}

func (g *Gemini) headers() map[string]string {
	return map[string]string{"x-goog-api-key": g.apiKey}
}

func (g *Gemini) Generate(ctx context.Context, prompt string, profile core.ModelProfile) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     profile.Temperature,
			MaxOutputTokens: profile.MaxTokens,
			TopP:            profile.TopP,
			TopK:            profile.TopK,
		},
	}

	path := "/v1beta/models/" + url.PathEscape(g.model) + ":generateContent"

	var result geminiResponse
	if err := g.call(ctx, http.MethodPost, path, payload, g.headers(), &result); err != nil {
		return "", err
	}

	if reason := result.PromptFeedback.BlockReason; reason != "" {
		return "", &core.ProviderError{Provider: g.name, Kind: core.ProviderInvalid, Err: errors.New("prompt blocked: " + reason)}
	}
	if len(result.Candidates) == 0 {
		return "", emptyCompletion(g.name)
	}

	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", emptyCompletion(g.name)
	}
	return text.String(), nil
}

func (g *Gemini) Models(ctx context.Context) ([]core.Model, error) {
	var result struct {
		Models []struct {
			Name                       string   `json:"name"`
			DisplayName                string   `json:"displayName"`
			InputTokenLimit            int      `json:"inputTokenLimit"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := g.call(ctx, http.MethodGet, "/v1beta/models?pageSize=1000", nil, g.headers(), &result); err != nil {
		return nil, err
	}

	models := make([]core.Model, 0, len(result.Models))
	for _, m := range result.Models {
		if !supportsGenerate(m.SupportedGenerationMethods) {
			continue
		}
		models = append(models, core.Model{
			ID:            strings.TrimPrefix(m.Name, "models/"),
			Name:          m.DisplayName,
			ContextLength: m.InputTokenLimit,
		})
	}
	return models, nil
}

func supportsGenerate(methods []string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}
