package llm

import (
	"context"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
	"github.com/sandevgo/edagent/pkg/retry"
)

// RetryingGenerator bounds every attempt with its own timeout and retries
// transient and rate-limited failures with exponential backoff.
type RetryingGenerator struct {
	next        core.TextGenerator
	callTimeout time.Duration
	attempts    int
	baseDelay   time.Duration
}

func NewRetryingGenerator(next core.TextGenerator, callTimeout time.Duration, attempts int, baseDelay time.Duration) *RetryingGenerator {
	return &RetryingGenerator{
		next:        next,
		callTimeout: callTimeout,
		attempts:    attempts,
		baseDelay:   baseDelay,
	}
}

func (r *RetryingGenerator) Generate(ctx context.Context, prompt string, profile core.ModelProfile) (string, error) {
	logger := log.FromCtx(ctx)

	policy := retry.NewPolicy(r.attempts, r.baseDelay, core.IsRetryable)
	policy.AttemptTimeout = r.callTimeout
	policy.OnRetry = func(n int, err error) {
		logger.Warn().Err(err).Int("retry", n).Msg("llm call failed, retrying")
	}

	return retry.Value(ctx, policy, func(ctx context.Context) (string, error) {
		return r.next.Generate(ctx, prompt, profile)
	})
}
