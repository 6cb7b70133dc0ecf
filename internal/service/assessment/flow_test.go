package assessment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeGenerator struct {
	mu       sync.Mutex
	adaptive func() (string, error)
	assess   func() (string, error)
	prompts  []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, _ core.ModelProfile) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if strings.Contains(prompt, "follow-up questions") {
		if g.adaptive == nil {
			return "", errors.New("no adaptive handler")
		}
		return g.adaptive()
	}
	if g.assess == nil {
		return "", errors.New("no assessment handler")
	}
	return g.assess()
}

func failing() (string, error) {
	return "", &core.ProviderError{Provider: "fake", Kind: core.ProviderTransient, Err: errors.New("boom")}
}

type fakeStore struct {
	core.UserContextStore
	saved   []core.SkillAssessment
	updated []core.SkillAssessment
}

func (s *fakeStore) SaveAssessment(_ context.Context, _ string, a core.SkillAssessment) error {
	s.saved = append(s.saved, a)
	return nil
}

func (s *fakeStore) UpdateSkills(_ context.Context, _ string, a core.SkillAssessment) error {
	s.updated = append(s.updated, a)
	return nil
}

func newTestFlow(g core.TextGenerator, store core.UserContextStore) *Flow {
	return NewFlow(g, store, WithClock(func() time.Time { return fixedNow }))
}

// answerAll feeds answers until the session completes or the guard trips.
func answerAll(t *testing.T, f *Flow, s *Session, answers []string) (*Session, core.Response, int) {
	t.Helper()

	var resp core.Response
	turns := 0
	for !s.IsComplete() {
		require.Less(t, turns, 20, "session did not terminate")
		answer := "ok"
		if turns < len(answers) {
			answer = answers[turns]
		}
		s, resp = f.Answer(context.Background(), s, core.NewUserProfile("u1"), answer)
		require.True(t, s.Consistent())
		turns++
	}
	return s, resp, turns
}

func TestFlow_Start(t *testing.T) {
	f := newTestFlow(&fakeGenerator{}, nil)

	s, resp := f.Start("u1")

	require.NotNil(t, s)
	assert.Len(t, s.Questions, FixedQuestionCount)
	assert.Equal(t, GeneralSkillArea, s.SkillArea)
	assert.Equal(t, core.AssessmentActive, s.Status)
	assert.Equal(t, 0, s.CurrentQuestionIndex)
	assert.True(t, s.Consistent())

	assert.Equal(t, core.ResponseAssessment, resp.Type)
	assert.Contains(t, resp.Message, "**Question 1 of 5:**")
	assert.Contains(t, resp.Message, fixedQuestions[0])
	assert.Equal(t, 0.0, resp.Metadata["progress"])
	assert.Equal(t, 5, resp.Metadata["total_questions"])
}

func TestFlow_AdaptiveExtension(t *testing.T) {
	g := &fakeGenerator{
		adaptive: func() (string, error) {
			return "Here are some questions:\n1. Which Python frameworks have you used so far?\n2) How do you usually test your code?\nThanks!", nil
		},
	}
	f := newTestFlow(g, nil)
	s, _ := f.Start("u1")

	answers := []string{"I code in python at work", "A little javascript", "I want a software job"}
	var resp core.Response
	for i, a := range answers {
		s, resp = f.Answer(context.Background(), s, core.NewUserProfile("u1"), a)
		if i < 2 {
			assert.Len(t, s.Questions, FixedQuestionCount, "no extension before the trigger")
			assert.False(t, s.Extended)
		}
	}

	require.True(t, s.Extended)
	assert.Equal(t, "Programming", s.SkillArea)
	require.Len(t, s.Questions, 7)
	assert.Equal(t, core.QuestionAdaptive, s.Questions[5].Type)
	assert.Equal(t, "Which Python frameworks have you used so far?", s.Questions[5].Text)
	assert.Equal(t, "How do you usually test your code?", s.Questions[6].Text)

	assert.InDelta(t, 3.0/7.0, resp.Metadata["progress"], 1e-9)
	assert.Equal(t, 7, resp.Metadata["total_questions"])
	assert.Contains(t, resp.Message, "**Question 4 of 7:**")

	// A later answer never extends again.
	s, _ = f.Answer(context.Background(), s, core.NewUserProfile("u1"), "more")
	assert.Len(t, s.Questions, 7)
}

func TestFlow_AnswerDoesNotMutateInput(t *testing.T) {
	f := newTestFlow(&fakeGenerator{adaptive: failing, assess: failing}, nil)
	s, _ := f.Start("u1")

	next, _ := f.Answer(context.Background(), s, core.NewUserProfile("u1"), "hello")

	assert.Empty(t, s.Responses)
	assert.Equal(t, 0, s.CurrentQuestionIndex)
	assert.Equal(t, []string{"hello"}, next.Responses)
	assert.Equal(t, 1, next.CurrentQuestionIndex)
}

func TestFlow_FailingGeneratorTerminatesWithFallback(t *testing.T) {
	store := &fakeStore{}
	f := newTestFlow(&fakeGenerator{adaptive: failing, assess: failing}, store)
	s, _ := f.Start("u1")

	s, resp, turns := answerAll(t, f, s, []string{"yes", "no", "maybe"})

	assert.LessOrEqual(t, turns, MaxQuestions)
	assert.Equal(t, MaxQuestions, turns, "fallback questions fill the adaptive slots")
	assert.Equal(t, core.AssessmentCompleted, s.Status)
	require.NotNil(t, s.CompletedAt)

	assert.Equal(t, core.ResponseAssessment, resp.Type)
	assert.Equal(t, core.FallbackConfidence, resp.Confidence)
	assert.Equal(t, true, resp.Metadata["fallback"])
	assert.Equal(t, GeneralSkillArea, resp.Metadata["skill_area"])
	assert.Equal(t, string(core.SkillBeginner), resp.Metadata["overall_level"])
	assert.Equal(t, 0.5, resp.Metadata["confidence_score"])
	assert.Contains(t, resp.Message, "**Skill Area:** General")
	assert.Contains(t, resp.Message, "**Overall Level:** Beginner")
	assert.Contains(t, resp.Message, "**Confidence Score:** 0.5/1.0")
	assert.Equal(t, CompletionActions, resp.SuggestedActions)

	assert.Empty(t, store.saved, "fallback assessments are not persisted")
	assert.Empty(t, store.updated)
}

func TestFlow_MalformedAssessmentFallsBack(t *testing.T) {
	g := &fakeGenerator{
		adaptive: failing,
		assess:   func() (string, error) { return "I think they are pretty good!", nil },
	}
	f := newTestFlow(g, nil)
	s, _ := f.Start("u1")

	_, resp, _ := answerAll(t, f, s, nil)

	assert.Equal(t, GeneralSkillArea, resp.Metadata["skill_area"])
	assert.Contains(t, resp.Message, "Willingness to learn")
}

func TestFlow_SuccessfulAssessmentIsPersisted(t *testing.T) {
	store := &fakeStore{}
	g := &fakeGenerator{
		adaptive: func() (string, error) { return "What projects have you built recently?", nil },
		assess: func() (string, error) {
			return "```json\n" + `{
				"skill_area": "Programming",
				"overall_level": "intermediate",
				"confidence_score": 0.8,
				"strengths": ["Python basics", "Problem solving"],
				"weaknesses": ["Testing", "Algorithms", "Git"],
				"recommendations": ["Write unit tests for a small project"],
				"detailed_scores": {"python": 0.7}
			}` + "\n```", nil
		},
	}
	f := newTestFlow(g, store)
	s, _ := f.Start("u1")

	s, resp, turns := answerAll(t, f, s, []string{"I code in python", "software at work", "coding daily"})

	assert.Equal(t, 6, turns)
	assert.Equal(t, core.AssessmentCompleted, s.Status)
	require.Len(t, store.saved, 1)
	require.Len(t, store.updated, 1)
	assert.Equal(t, "Programming", store.saved[0].SkillArea)
	assert.Equal(t, core.SkillIntermediate, store.saved[0].OverallLevel)
	assert.Equal(t, "u1", store.saved[0].UserID)

	assert.Equal(t, 0.9, resp.Confidence)
	assert.Contains(t, resp.Message, "**Overall Level:** Intermediate")
	assert.Contains(t, resp.Message, "Build more complex projects")
	assert.Contains(t, resp.Message, "Focus on improving: Testing, Algorithms")
	assert.Contains(t, resp.Message, "• Write unit tests for a small project")
}

func TestFlow_AnswerOnCompletedSession(t *testing.T) {
	f := newTestFlow(&fakeGenerator{}, nil)
	s := &Session{Status: core.AssessmentCompleted}

	got, resp := f.Answer(context.Background(), s, core.NewUserProfile("u1"), "late")

	assert.Same(t, s, got)
	assert.LessOrEqual(t, resp.Confidence, core.FallbackConfidence)
}
