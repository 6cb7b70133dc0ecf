package llm

import (
	"errors"
	"fmt"

	"github.com/sandevgo/edagent/internal/core"
)

var errEmptyCompletion = errors.New("empty completion")

// transportError wraps network failures, which are always worth retrying.
func transportError(provider string, err error) *core.ProviderError {
	return &core.ProviderError{Provider: provider, Kind: core.ProviderTransient, Err: fmt.Errorf("request: %w", err)}
}

func emptyCompletion(provider string) *core.ProviderError {
	return &core.ProviderError{Provider: provider, Kind: core.ProviderTransient, Err: errEmptyCompletion}
}
