package learningpath

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

// Result is a generated path plus whether it came from the model.
type Result struct {
	Path     core.LearningPath
	Fallback bool
}

type Generator struct {
	ai    core.TextGenerator
	store core.UserContextStore
	now   func() time.Time
}

func NewGenerator(ai core.TextGenerator, store core.UserContextStore) *Generator {
	return &Generator{ai: ai, store: store, now: time.Now}
}

// Create builds a learning path toward goal. It never fails: model or decode
// errors produce FallbackPath. Only model-produced paths are persisted.
func (g *Generator) Create(ctx context.Context, userID, goal string, profile core.UserProfile) Result {
	logger := log.FromCtx(ctx)
	goal = strings.TrimSpace(goal)

	path, err := g.generate(ctx, userID, goal, profile)
	if err != nil {
		var me *core.MalformedResponseError
		if errors.As(err, &me) {
			logger.Warn().Err(err).Str("user_id", userID).Msg("learning path output could not be decoded, using fallback")
		} else {
			logger.Warn().Err(err).Str("user_id", userID).Msg("learning path generation failed, using fallback")
		}
		return Result{Path: FallbackPath(userID, goal, g.now()), Fallback: true}
	}

	if g.store != nil {
		if err := g.store.SaveLearningPath(ctx, userID, path); err != nil {
			logger.Error().Err(err).Str("user_id", userID).Msg("failed to save learning path")
		}
	}

	logger.Info().
		Str("user_id", userID).
		Str("title", path.Title).
		Int("milestones", len(path.Milestones)).
		Msg("learning path created")

	return Result{Path: path}
}

func (g *Generator) generate(ctx context.Context, userID, goal string, profile core.UserProfile) (core.LearningPath, error) {
	if g.ai == nil {
		return core.LearningPath{}, errors.New("no text generator configured")
	}
	text, err := g.ai.Generate(ctx, buildPrompt(goal, profile), core.ReasoningProfile)
	if err != nil {
		return core.LearningPath{}, fmt.Errorf("generate learning path: %w", err)
	}
	return ParsePath(userID, goal, text, g.now())
}
