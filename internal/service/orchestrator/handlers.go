package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/learningpath"
	"github.com/sandevgo/edagent/internal/service/state"
	"github.com/sandevgo/edagent/pkg/log"
)

const (
	pathConfidence         = 0.9
	clarifyGoalConfidence  = 0.8
	clarifyTopicConfidence = 0.7
	noResourcesConfidence  = 0.6
	recommendConfidence    = 0.9
	chatConfidence         = 0.9

	minPendingGoalLen = 5
)

func (o *Orchestrator) startAssessment(conv state.Conversation) turnResult {
	session, resp := o.flow.Start(conv.UserID)
	conv.Mode = state.ModeInAssessment
	conv.Assessment = session
	return turnResult{resp: resp, conv: conv, intent: core.IntentAssessment}
}

// continueAssessment treats every message as an answer, whatever it says.
func (o *Orchestrator) continueAssessment(ctx context.Context, conv state.Conversation, profile core.UserProfile, text string) (turnResult, error) {
	session, resp := o.flow.Answer(ctx, conv.Assessment, profile, text)

	res := turnResult{resp: resp, intent: core.IntentAssessment}
	if session == nil || session.Status != core.AssessmentActive {
		conv = conv.Idle()
		if fb, _ := resp.Metadata["fallback"].(bool); fb {
			res.fallback = "assessment"
		}
	} else {
		conv.Assessment = session
	}
	res.conv = conv
	return res, nil
}

func (o *Orchestrator) startLearningPath(ctx context.Context, conv state.Conversation, profile core.UserProfile, text string) turnResult {
	goal := ExtractGoal(text)
	if goal == "" {
		conv.Mode = state.ModeCreatingLearningPath
		conv.PendingGoal = true
		return turnResult{
			conv:   conv,
			intent: core.IntentLearningPath,
			resp: core.Response{
				Message:    "I'd love to create a learning path for you! What specific career goal or skill would you like to work towards?",
				Type:       core.ResponseText,
				Confidence: clarifyGoalConfidence,
				SuggestedActions: []string{
					"What career are you interested in?",
					"What skills do you want to develop?",
					"Are you looking to change careers or advance in your current field?",
				},
			},
		}
	}

	res := o.createPath(ctx, conv.UserID, goal, profile, "I've created a personalized learning path for '%s':\n\n%s")
	res.resp.SuggestedActions = []string{
		"Get content recommendations for the first milestone",
		"Adjust the learning path timeline",
		"Start with prerequisite skills",
	}
	res.conv = conv
	return res
}

// continueLearningPath takes the message as the goal the user was asked for.
func (o *Orchestrator) continueLearningPath(ctx context.Context, conv state.Conversation, profile core.UserProfile, text string) (turnResult, error) {
	goal := strings.TrimSpace(text)
	if len(goal) < minPendingGoalLen {
		return turnResult{
			conv:   conv,
			intent: core.IntentLearningPath,
			resp: core.Response{
				Message:    "Could you be more specific about your learning goal? For example, 'become a web developer' or 'learn data analysis'.",
				Type:       core.ResponseText,
				Confidence: clarifyTopicConfidence,
			},
		}, nil
	}

	res := o.createPath(ctx, conv.UserID, goal, profile, "Perfect! I've created a learning path for '%s':\n\n%s")
	res.resp.SuggestedActions = []string{
		"Get content recommendations for the first milestone",
		"Start with prerequisite skills if needed",
	}
	res.conv = conv.Idle()
	return res, nil
}

func (o *Orchestrator) createPath(ctx context.Context, userID, goal string, profile core.UserProfile, format string) turnResult {
	out := o.paths.Create(ctx, userID, goal, profile)

	confidence := pathConfidence
	fallback := ""
	if out.Fallback {
		confidence = core.FallbackConfidence
		fallback = "learning_path"
	}

	return turnResult{
		intent:   core.IntentLearningPath,
		fallback: fallback,
		resp: core.Response{
			Message:    fmt.Sprintf(format, goal, learningpath.Summary(out.Path)),
			Type:       core.ResponseLearningPath,
			Confidence: confidence,
			Metadata: map[string]any{
				"learning_path_id": out.Path.ID,
				"goal":             goal,
				"milestones":       len(out.Path.Milestones),
				"estimated_days":   out.Path.EstimatedDurationDays(),
				"fallback":         out.Fallback,
			},
		},
	}
}

func (o *Orchestrator) recommend(ctx context.Context, conv state.Conversation, profile core.UserProfile, text string) (turnResult, error) {
	res := turnResult{conv: conv, intent: core.IntentContentRecommendation}

	topic := ExtractTopic(text)
	if topic == "" {
		res.resp = core.Response{
			Message:    "What specific topic or skill would you like me to find resources for?",
			Type:       core.ResponseText,
			Confidence: clarifyTopicConfidence,
		}
		return res, nil
	}

	filters := o.cfg.Search
	if profile.Preferences != nil && profile.Preferences.Budget == core.BudgetFree {
		filters.FreeOnly = true
	}

	records, err := o.search.Search(ctx, topic, filters)
	if err != nil {
		return res, fmt.Errorf("search %q: %w", topic, err)
	}

	items := make([]core.ContentItem, 0, len(records))
	for _, r := range records {
		items = append(items, r.ToContentItem())
	}

	ranked := o.rankForRequest(ctx, items, profile, text)
	if len(ranked) > o.cfg.RecommendationLimit {
		ranked = ranked[:o.cfg.RecommendationLimit]
	}

	log.FromCtx(ctx).Info().
		Str("topic", topic).
		Int("candidates", len(items)).
		Int("returned", len(ranked)).
		Msg("content ranked")

	if len(ranked) == 0 {
		res.resp = core.Response{
			Message:    fmt.Sprintf("I couldn't find specific resources for '%s' right now. Could you try a different topic or be more specific?", topic),
			Type:       core.ResponseText,
			Confidence: noResourcesConfidence,
		}
		return res, nil
	}

	res.resp = core.Response{
		Message:                fmt.Sprintf("Here are some great resources for %s:\n\n%s", topic, FormatRecommendations(ranked)),
		Type:                   core.ResponseContentRecommendation,
		Confidence:             recommendConfidence,
		ContentRecommendations: ranked,
		SuggestedActions: []string{
			"Create a learning path for " + topic,
			"Assess my skills in this area",
		},
		Metadata: map[string]any{
			"topic":      topic,
			"candidates": len(items),
		},
	}
	return res, nil
}

// rankForRequest narrows the ranking to the media types the request names.
// When none of the candidates has such a type the profile filters alone apply.
func (o *Orchestrator) rankForRequest(ctx context.Context, items []core.ContentItem, profile core.UserProfile, text string) []core.ContentItem {
	types := ExtractContentTypes(text)
	if len(types) == 0 {
		return o.ranker.Rank(ctx, items, profile)
	}

	f := o.ranker.DefaultFilters(profile)
	f.ContentTypes = types
	if ranked := o.ranker.RankWithFilters(ctx, items, profile, f); len(ranked) > 0 {
		return ranked
	}

	log.FromCtx(ctx).Debug().
		Int("types", len(types)).
		Msg("no candidates of the requested type, ranking all")
	return o.ranker.Rank(ctx, items, profile)
}

func (o *Orchestrator) chat(ctx context.Context, conv state.Conversation, profile core.UserProfile, text string) (turnResult, error) {
	res := turnResult{conv: conv, intent: core.IntentGeneral}

	var history []core.ConversationTurn
	if o.history != nil {
		turns, err := o.history.RecentTurns(ctx, conv.UserID, o.cfg.HistoryTurns)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to load history, answering without it")
		}
		history = turns
	}

	out, err := o.ai.Generate(ctx, buildChatPrompt(text, profile, history, o.cfg.PromptTokens), core.ChatProfile)
	if err != nil {
		return res, fmt.Errorf("generate chat reply: %w", err)
	}

	message, ok := CleanChatResponse(out)
	confidence := chatConfidence
	if !ok {
		confidence = core.FallbackConfidence
		res.fallback = "chat"
	}

	var actions []string
	if len(profile.Skills) == 0 {
		actions = append(actions, "Would you like me to assess your current skills?")
	}
	if len(profile.CareerGoals) == 0 {
		actions = append(actions, "What are your career goals? I can help create a learning path.")
	}

	res.resp = core.Response{
		Message:          message,
		Type:             core.ResponseText,
		Confidence:       confidence,
		SuggestedActions: actions,
	}
	return res, nil
}
