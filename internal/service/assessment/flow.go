package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

const (
	questionConfidence   = 0.95
	completionConfidence = 0.9

	defaultPromptTokens = 1500
)

type Flow struct {
	ai           core.TextGenerator
	store        core.UserContextStore
	now          func() time.Time
	promptTokens int
}

type Option func(*Flow)

func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// WithPromptTokens caps how much of the user's answers is sent to the model.
func WithPromptTokens(n int) Option {
	return func(f *Flow) {
		if n > 0 {
			f.promptTokens = n
		}
	}
}

func NewFlow(ai core.TextGenerator, store core.UserContextStore, opts ...Option) *Flow {
	f := &Flow{
		ai:           ai,
		store:        store,
		now:          time.Now,
		promptTokens: defaultPromptTokens,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start opens a session seeded with the fixed question bank.
func (f *Flow) Start(userID string) (*Session, core.Response) {
	now := f.now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		SkillArea: GeneralSkillArea,
		Questions: make([]core.Question, 0, MaxQuestions),
		Status:    core.AssessmentActive,
		StartedAt: now,
		UpdatedAt: now,
	}
	for _, q := range fixedQuestions {
		s.Questions = append(s.Questions, core.Question{Text: q, Type: core.QuestionFixed})
	}

	first, _ := s.CurrentQuestion()
	return s, core.Response{
		Message:    fmt.Sprintf("Great! I'll help assess your skills.\n\n%s", questionLine(s, first)),
		Type:       core.ResponseAssessment,
		Confidence: questionConfidence,
		Metadata:   progressMetadata(s),
	}
}

// Answer records one answer and returns the next session value together with
// the reply. The input session is never modified. Collaborator failures are
// resolved to fallbacks, so Answer has no error result.
func (f *Flow) Answer(ctx context.Context, session *Session, profile core.UserProfile, answer string) (*Session, core.Response) {
	logger := log.FromCtx(ctx)

	if session == nil || session.Status != core.AssessmentActive || session.IsComplete() {
		logger.Warn().Msg("answer received for inactive assessment session")
		return session, core.ApologyResponse()
	}

	s := session.Clone()
	s.Responses = append(s.Responses, strings.TrimSpace(answer))
	s.CurrentQuestionIndex = len(s.Responses)
	s.UpdatedAt = f.now()

	if len(s.Responses) == AdaptiveQuestionTrigger && !s.Extended {
		f.extend(ctx, s)
	}

	if s.IsComplete() {
		return s, f.complete(ctx, s, profile)
	}

	next, _ := s.CurrentQuestion()
	progress := s.Progress()
	return s, core.Response{
		Message:    fmt.Sprintf("%s\n\n%s", Encouragement(progress, s.CurrentQuestionIndex), questionLine(s, next)),
		Type:       core.ResponseAssessment,
		Confidence: questionConfidence,
		Metadata:   progressMetadata(s),
	}
}

// extend re-infers the skill area and appends follow-up questions once.
func (f *Flow) extend(ctx context.Context, s *Session) {
	logger := log.FromCtx(ctx)

	s.SkillArea = InferSkillArea(s.Responses)
	s.Extended = true

	questions := f.adaptiveQuestions(ctx, s)

	room := MaxQuestions - len(s.Questions)
	if room > MaxAdaptiveQuestions {
		room = MaxAdaptiveQuestions
	}
	if len(questions) > room {
		questions = questions[:room]
	}
	for _, q := range questions {
		s.Questions = append(s.Questions, core.Question{Text: q, Type: core.QuestionAdaptive})
	}

	logger.Debug().
		Str("skill_area", s.SkillArea).
		Int("added", len(questions)).
		Int("total", len(s.Questions)).
		Msg("assessment extended")
}

func (f *Flow) adaptiveQuestions(ctx context.Context, s *Session) []string {
	logger := log.FromCtx(ctx)

	if f.ai == nil {
		return FallbackQuestions(s.SkillArea)
	}

	text, err := f.ai.Generate(ctx, buildAdaptivePrompt(s.SkillArea, s.Responses, f.promptTokens), core.ReasoningProfile)
	if err != nil {
		logger.Warn().Err(err).Str("skill_area", s.SkillArea).Msg("adaptive questions unavailable, using fallback set")
		return FallbackQuestions(s.SkillArea)
	}

	questions := ParseQuestions(text)
	if len(questions) == 0 {
		logger.Warn().Str("skill_area", s.SkillArea).Msg("no questions in model output, using fallback set")
		return FallbackQuestions(s.SkillArea)
	}
	return questions
}

func (f *Flow) complete(ctx context.Context, s *Session, profile core.UserProfile) core.Response {
	logger := log.FromCtx(ctx)

	now := f.now()
	s.Status = core.AssessmentCompleted
	s.CompletedAt = &now

	confidence := completionConfidence
	result, err := f.assess(ctx, s, profile)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", s.UserID).Msg("skill assessment failed, using fallback")
		result = FallbackAssessment(s.UserID, now)
		confidence = core.FallbackConfidence
	} else if f.store != nil {
		if err := f.store.SaveAssessment(ctx, s.UserID, result); err != nil {
			logger.Error().Err(err).Str("user_id", s.UserID).Msg("failed to save assessment")
		}
		if err := f.store.UpdateSkills(ctx, s.UserID, result); err != nil {
			logger.Error().Err(err).Str("user_id", s.UserID).Msg("failed to update skills")
		}
	}

	return core.Response{
		Message: fmt.Sprintf("Assessment complete! Here's what I found:\n\n%s\n\n%s",
			Summary(result), NextSteps(result)),
		Type:             core.ResponseAssessment,
		Confidence:       confidence,
		SuggestedActions: append([]string(nil), CompletionActions...),
		Metadata: map[string]any{
			"assessment_id":    s.ID,
			"skill_area":       result.SkillArea,
			"overall_level":    string(result.OverallLevel),
			"confidence_score": result.ConfidenceScore,
			"total_questions":  len(s.Questions),
			"fallback":         err != nil,
		},
	}
}

func (f *Flow) assess(ctx context.Context, s *Session, profile core.UserProfile) (core.SkillAssessment, error) {
	if f.ai == nil {
		return core.SkillAssessment{}, fmt.Errorf("no text generator configured")
	}

	prompt := buildAssessmentPrompt(s.SkillArea, s.Responses, f.promptTokens)
	if len(profile.CareerGoals) > 0 {
		prompt += "\n\nThe user's career goals: " + strings.Join(profile.CareerGoals, ", ")
	}

	text, err := f.ai.Generate(ctx, prompt, core.ReasoningProfile)
	if err != nil {
		return core.SkillAssessment{}, fmt.Errorf("generate assessment: %w", err)
	}
	return ParseAssessment(s.UserID, text, f.now())
}

func questionLine(s *Session, q core.Question) string {
	return fmt.Sprintf("**Question %d of %d:** %s", s.CurrentQuestionIndex+1, s.TotalQuestions(), q.Text)
}

func progressMetadata(s *Session) map[string]any {
	return map[string]any{
		"assessment_id":   s.ID,
		"question_index":  s.CurrentQuestionIndex,
		"progress":        s.Progress(),
		"total_questions": s.TotalQuestions(),
		"skill_area":      s.SkillArea,
	}
}
