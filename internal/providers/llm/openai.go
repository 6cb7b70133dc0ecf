package llm

import (
	"context"
	"slices"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
)

const openAIBaseURL = "https://api.openai.com"

// chatModelPrefixes filter the OpenAI listing, which also carries embedding,
// audio and image models that cannot answer a chat request.
var chatModelPrefixes = []string{"gpt-", "chatgpt-", "o1", "o3", "o4"}

type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(baseURL, apiKey, model string) *OpenAI {
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "openai",
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}

func (o *OpenAI) Models(ctx context.Context) ([]core.Model, error) {
	all, err := o.listModels(ctx)
	if err != nil {
		return nil, err
	}

	chat := make([]core.Model, 0, len(all))
	for _, m := range all {
		if isChatModel(m.ID) {
			chat = append(chat, m)
		}
	}
	slices.SortFunc(chat, func(a, b core.Model) int { return strings.Compare(a.ID, b.ID) })
	return chat, nil
}

func isChatModel(id string) bool {
	if strings.Contains(id, "realtime") || strings.Contains(id, "audio") || strings.Contains(id, "tts") ||
		strings.Contains(id, "transcribe") || strings.Contains(id, "image") {
		return false
	}
	for _, p := range chatModelPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}
