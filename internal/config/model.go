package config

import (
	"errors"
	"strings"
)

var errEmptyModel = errors.New("model name is empty")

var knownProviders = map[string]bool{
	"gemini":     true,
	"openai":     true,
	"anthropic":  true,
	"openrouter": true,
	"ollama":     true,
	"custom":     true,
}

// splitModel separates a known provider prefix from the model id.
// OpenRouter ids contain slashes themselves, so only a known prefix is split off.
func splitModel(s string) (provider, model string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "/"); i > 0 {
		if p := strings.ToLower(s[:i]); knownProviders[p] {
			return p, s[i+1:]
		}
	}
	return "", s
}
