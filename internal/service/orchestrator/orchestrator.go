package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/assessment"
	"github.com/sandevgo/edagent/internal/service/learningpath"
	"github.com/sandevgo/edagent/internal/service/ranking"
	"github.com/sandevgo/edagent/internal/service/state"
	"github.com/sandevgo/edagent/pkg/log"
)

const (
	DefaultTurnTimeout         = 45 * time.Second
	DefaultRecommendationLimit = 5
	DefaultHistoryTurns        = 6
	DefaultPromptTokens        = 1500
)

type Classifier interface {
	Classify(message string) core.Intent
}

// Recorder receives per-turn telemetry.
type Recorder interface {
	TurnCompleted(intent core.Intent, outcome string, elapsed time.Duration)
	FallbackUsed(kind string)
}

// Turn outcomes reported to the Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
)

type Config struct {
	TurnTimeout         time.Duration
	RecommendationLimit int
	HistoryTurns        int
	PromptTokens        int
	Search              core.SearchFilters
}

type Orchestrator struct {
	cfg        Config
	states     *state.Store
	classifier Classifier
	flow       *assessment.Flow
	paths      *learningpath.Generator
	search     core.ContentSearchProvider
	ranker     *ranking.Engine
	ai         core.TextGenerator
	store      core.UserContextStore
	history    core.HistoryReader
	metrics    Recorder
}

type Option func(*Orchestrator)

func WithHistory(h core.HistoryReader) Option {
	return func(o *Orchestrator) { o.history = h }
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.metrics = r }
}

func New(
	cfg Config,
	states *state.Store,
	classifier Classifier,
	flow *assessment.Flow,
	paths *learningpath.Generator,
	search core.ContentSearchProvider,
	ranker *ranking.Engine,
	ai core.TextGenerator,
	store core.UserContextStore,
	opts ...Option,
) *Orchestrator {
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = DefaultTurnTimeout
	}
	if cfg.RecommendationLimit <= 0 {
		cfg.RecommendationLimit = DefaultRecommendationLimit
	}
	if cfg.HistoryTurns <= 0 {
		cfg.HistoryTurns = DefaultHistoryTurns
	}
	if cfg.PromptTokens <= 0 {
		cfg.PromptTokens = DefaultPromptTokens
	}

	o := &Orchestrator{
		cfg:        cfg,
		states:     states,
		classifier: classifier,
		flow:       flow,
		paths:      paths,
		search:     search,
		ranker:     ranker,
		ai:         ai,
		store:      store,
		metrics:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// turnResult is what a handler hands back to the turn pipeline.
type turnResult struct {
	resp     core.Response
	conv     state.Conversation
	intent   core.Intent
	fallback string
}

// HandleMessage runs one user turn. It always returns a response: faults and
// deadline overruns become the apology reply and never leak as errors.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, text string) core.Response {
	started := time.Now()
	ctx = log.WithFields(ctx, "user_id", userID)
	logger := log.FromCtx(ctx)

	turnCtx, cancel := context.WithTimeout(ctx, o.cfg.TurnTimeout)
	defer cancel()

	turn, err := o.states.Acquire(turnCtx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("gave up waiting for previous turn")
		o.metrics.TurnCompleted("", OutcomeTimeout, time.Since(started))
		return core.ApologyResponse()
	}
	defer turn.Release()

	before := turn.Snapshot()
	res, err := o.runTurn(turnCtx, before.Clone(), text)

	outcome := OutcomeOK
	switch {
	case turnCtx.Err() != nil:
		// Abandon whatever the collaborators produced; state stays as it was.
		logger.Warn().
			Err(turnCtx.Err()).
			Str("state", string(before.Mode)).
			Msg("turn deadline exceeded, state rolled back")
		res.resp = core.ApologyResponse()
		outcome = OutcomeTimeout

	case err != nil:
		logger.Error().
			Err(err).
			Str("state", string(before.Mode)).
			Str("intent", string(res.intent)).
			Msg("turn failed, conversation reset to idle")
		after := before.Idle()
		after.MessageCount++
		turn.Commit(after)
		res.resp = core.ApologyResponse()
		outcome = OutcomeError

	default:
		res.conv.MessageCount++
		if !res.conv.Consistent() {
			logger.Error().Str("state", string(res.conv.Mode)).Msg("inconsistent conversation state, resetting")
			res.conv = res.conv.Idle()
		}
		turn.Commit(res.conv)
		if res.fallback != "" {
			outcome = OutcomeFallback
			o.metrics.FallbackUsed(res.fallback)
		}
	}

	o.metrics.TurnCompleted(res.intent, outcome, time.Since(started))
	o.appendTurn(ctx, userID, text, res.resp)

	return res.resp
}

// runTurn dispatches on the conversation mode. Panics are turned into
// *core.OrchestratorError.
func (o *Orchestrator) runTurn(ctx context.Context, conv state.Conversation, text string) (res turnResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.FromCtx(ctx).Error().Bytes("stack", debug.Stack()).Msg("panic in turn")
			err = &core.OrchestratorError{UserID: conv.UserID, Op: "handle_message", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	profile := o.profile(ctx, conv.UserID)

	switch conv.Mode {
	case state.ModeInAssessment:
		res, err = o.continueAssessment(ctx, conv, profile, text)
	case state.ModeCreatingLearningPath:
		res, err = o.continueLearningPath(ctx, conv, profile, text)
	default:
		res, err = o.route(ctx, conv, profile, text)
	}
	if err != nil {
		var oe *core.OrchestratorError
		if !errors.As(err, &oe) {
			err = &core.OrchestratorError{UserID: conv.UserID, Op: string(res.intent), Err: err}
		}
	}
	return res, err
}

func (o *Orchestrator) route(ctx context.Context, conv state.Conversation, profile core.UserProfile, text string) (turnResult, error) {
	intent := o.classifier.Classify(text)
	log.FromCtx(ctx).Debug().Str("intent", string(intent)).Msg("message classified")

	switch intent {
	case core.IntentAssessment:
		return o.startAssessment(conv), nil
	case core.IntentLearningPath:
		return o.startLearningPath(ctx, conv, profile, text), nil
	case core.IntentContentRecommendation:
		return o.recommend(ctx, conv, profile, text)
	default:
		return o.chat(ctx, conv, profile, text)
	}
}

// profile loads the stored profile. Store failures degrade to an empty one.
func (o *Orchestrator) profile(ctx context.Context, userID string) core.UserProfile {
	if o.store == nil {
		return core.NewUserProfile(userID)
	}
	p, err := o.store.GetProfile(ctx, userID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load profile, continuing without it")
		return core.NewUserProfile(userID)
	}
	if p.Skills == nil {
		p.Skills = make(map[string]core.SkillRecord)
	}
	return p
}

func (o *Orchestrator) appendTurn(ctx context.Context, userID, text string, resp core.Response) {
	if o.store == nil || strings.TrimSpace(text) == "" {
		return
	}
	if err := o.store.AppendConversationTurn(ctx, userID, text, resp); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to append conversation turn")
	}
}

// Reset drops the user's conversation state.
func (o *Orchestrator) Reset(userID string) {
	o.states.Reset(userID)
}

// StateSnapshot is a read-only view of one user's conversation.
type StateSnapshot struct {
	UserID       string            `json:"user_id"`
	State        state.Mode        `json:"state"`
	MessageCount int               `json:"message_count"`
	LastActivity time.Time         `json:"last_activity,omitempty"`
	Assessment   *AssessmentStatus `json:"assessment,omitempty"`
}

type AssessmentStatus struct {
	ID             string  `json:"id"`
	SkillArea      string  `json:"skill_area"`
	Answered       int     `json:"answered"`
	TotalQuestions int     `json:"total_questions"`
	Progress       float64 `json:"progress"`
}

func (o *Orchestrator) Status(userID string) StateSnapshot {
	c, ok := o.states.Peek(userID)
	if !ok {
		return StateSnapshot{UserID: userID, State: state.ModeIdle}
	}
	snap := StateSnapshot{
		UserID:       userID,
		State:        c.Mode,
		MessageCount: c.MessageCount,
		LastActivity: c.LastActivity,
	}
	if s := c.Assessment; s != nil {
		snap.Assessment = &AssessmentStatus{
			ID:             s.ID,
			SkillArea:      s.SkillArea,
			Answered:       len(s.Responses),
			TotalQuestions: s.TotalQuestions(),
			Progress:       s.Progress(),
		}
	}
	return snap
}

type nopRecorder struct{}

func (nopRecorder) TurnCompleted(core.Intent, string, time.Duration) {}
func (nopRecorder) FallbackUsed(string)                              {}
