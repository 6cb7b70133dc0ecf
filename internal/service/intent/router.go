package intent

import (
	"strings"

	"github.com/sandevgo/edagent/internal/core"
)

type category struct {
	intent  core.Intent
	phrases []string
}

// categories are checked in order; the first with any hit wins.
var categories = []category{
	{
		intent: core.IntentAssessment,
		phrases: []string{
			"assess", "assessment", "evaluate", "skill level", "test my",
			"check my skills", "what can i do", "how good am i",
		},
	},
	{
		intent: core.IntentLearningPath,
		phrases: []string{
			"learning path", "roadmap", "plan", "how to learn", "career path",
			"become a", "learn to be", "study plan", "curriculum",
		},
	},
	{
		intent: core.IntentContentRecommendation,
		phrases: []string{
			"recommend", "suggest", "find course", "tutorial", "video",
			"resource", "material", "book", "learn about",
		},
	},
}

type Router struct{}

func NewRouter() *Router {
	return &Router{}
}

// Classify maps a raw message to an intent by ordered substring matching.
func (r *Router) Classify(message string) core.Intent {
	return Classify(message)
}

func Classify(message string) core.Intent {
	text := strings.ToLower(message)
	for _, c := range categories {
		for _, p := range c.phrases {
			if strings.Contains(text, p) {
				return c.intent
			}
		}
	}
	return core.IntentGeneral
}
