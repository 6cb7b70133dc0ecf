package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/assessment"
	"github.com/sandevgo/edagent/internal/service/intent"
	"github.com/sandevgo/edagent/internal/service/learningpath"
	"github.com/sandevgo/edagent/internal/service/ranking"
	"github.com/sandevgo/edagent/internal/service/state"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type genFunc func(ctx context.Context, prompt string) (string, error)

type fakeAI struct {
	fn genFunc
}

func (f *fakeAI) Generate(ctx context.Context, prompt string, _ core.ModelProfile) (string, error) {
	return f.fn(ctx, prompt)
}

func aiError(context.Context, string) (string, error) {
	return "", &core.ProviderError{Provider: "fake", Kind: core.ProviderTransient, Err: errors.New("unavailable")}
}

type memStore struct {
	mu          sync.Mutex
	profiles    map[string]core.UserProfile
	turns       []core.ConversationTurn
	paths       []core.LearningPath
	assessments []core.SkillAssessment
}

func newMemStore() *memStore {
	return &memStore{profiles: make(map[string]core.UserProfile)}
}

func (s *memStore) GetProfile(_ context.Context, userID string) (core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		return p, nil
	}
	return core.NewUserProfile(userID), nil
}

func (s *memStore) UpdateSkills(_ context.Context, userID string, a core.SkillAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		p = core.NewUserProfile(userID)
	}
	p.Skills[a.SkillArea] = core.SkillRecord{Level: a.OverallLevel, Confidence: a.ConfidenceScore}
	s.profiles[userID] = p
	return nil
}

func (s *memStore) SaveAssessment(_ context.Context, _ string, a core.SkillAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments = append(s.assessments, a)
	return nil
}

func (s *memStore) SaveLearningPath(_ context.Context, _ string, p core.LearningPath) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, p)
	return nil
}

func (s *memStore) AppendConversationTurn(_ context.Context, userID, message string, resp core.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, core.ConversationTurn{
		UserID:       userID,
		Message:      message,
		Response:     resp.Message,
		ResponseType: resp.Type,
	})
	return nil
}

func (s *memStore) RecentTurns(_ context.Context, userID string, limit int) ([]core.ConversationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ConversationTurn
	for _, t := range s.turns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *memStore) turnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

type fakeSearch struct {
	mu      sync.Mutex
	records []core.RawContentRecord
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ core.SearchFilters) ([]core.RawContentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.records, f.err
}

func video(id, title string, tags []string, quality float64) core.RawContentRecord {
	published := refNow.AddDate(0, 0, -10)
	return core.RawContentRecord{
		Source: "youtube",
		Item: core.ContentItem{
			ID:          id,
			Kind:        core.KindVideo,
			Title:       title,
			URL:         "https://www.youtube.com/watch?v=" + id,
			Platform:    core.PlatformYouTube,
			ContentType: core.TypeVideo,
			IsFree:      true,
			Duration:    20 * time.Minute,
			PublishedAt: &published,
			SkillTags:   tags,
			Difficulty:  core.DifficultyBeginner,
			Quality:     quality,
			Video:       &core.VideoDetails{VideoID: id, ViewCount: 10000},
		},
	}
}

type harness struct {
	orch   *Orchestrator
	store  *memStore
	search *fakeSearch
	states *state.Store
}

func newHarness(ai genFunc, opts ...func(*Config)) *harness {
	store := newMemStore()
	search := &fakeSearch{}
	gen := &fakeAI{fn: ai}
	states := state.NewStore(100, time.Hour)

	cfg := Config{TurnTimeout: 2 * time.Second, RecommendationLimit: 3}
	for _, o := range opts {
		o(&cfg)
	}

	lp := learningpath.NewGenerator(gen, store)
	orch := New(
		cfg,
		states,
		intent.NewRouter(),
		assessment.NewFlow(gen, store, assessment.WithClock(func() time.Time { return refNow })),
		lp,
		search,
		ranking.NewEngine(ranking.WithClock(func() time.Time { return refNow })),
		gen,
		store,
		WithHistory(store),
	)
	return &harness{orch: orch, store: store, search: search, states: states}
}

func isAdaptivePrompt(prompt string) bool {
	return strings.Contains(prompt, "follow-up questions")
}
