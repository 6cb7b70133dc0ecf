package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return refNow }))
}

func TestEngine_PythonBeatsJavaForWebGoal(t *testing.T) {
	profile := core.UserProfile{
		UserID: "u1",
		Skills: map[string]core.SkillRecord{
			"python": {Level: core.SkillBeginner, Confidence: 0.6},
		},
		CareerGoals: []string{"become a web developer"},
	}
	items := []core.ContentItem{
		video("java", "Java programming basics", 0.7, "java"),
		video("py", "Python for web development", 0.8, "python", "web development"),
	}

	ranked := newTestEngine().Rank(context.Background(), items, profile)
	require.Len(t, ranked, 2)
	assert.Equal(t, "py", ranked[0].ID)
	assert.Greater(t, ranked[0].Composite, ranked[1].Composite)
	require.NotNil(t, ranked[0].Scores)
	assert.Equal(t, ranked[0].Scores.SkillRelevance, ranked[0].SkillMatch)
}

func TestEngine_HardFilters(t *testing.T) {
	cheap := course("cheap", "Cheap SQL course", 20, 0.8)
	pricey := course("pricey", "Pricey SQL masterclass", 120, 0.9)
	free := video("free", "Free SQL video", 0.6, "sql")
	junk := video("junk", "Low quality clip", 0.1, "sql")
	expert := video("expert", "Expert SQL internals", 0.9, "sql")
	expert.Difficulty = core.DifficultyExpert

	items := []core.ContentItem{cheap, pricey, free, junk, expert}

	tests := []struct {
		name  string
		prefs *core.Preferences
		want  []string
	}{
		{name: "no preferences drops low quality only", prefs: nil, want: []string{"cheap", "pricey", "free", "expert"}},
		{name: "free only", prefs: &core.Preferences{Budget: core.BudgetFree}, want: []string{"free", "expert"}},
		{name: "low cost", prefs: &core.Preferences{Budget: core.BudgetLowCost}, want: []string{"cheap", "free", "expert"}},
		{name: "gradual excludes expert", prefs: &core.Preferences{DifficultyPreference: core.DifficultyGradual}, want: []string{"cheap", "pricey", "free"}},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := core.UserProfile{Preferences: tt.prefs}
			got := e.Rank(context.Background(), items, profile)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestEngine_ExplicitTypeAndDifficultyFilters(t *testing.T) {
	items := []core.ContentItem{
		video("v", "Intro video", 0.8),
		course("c", "Intermediate course", 0, 0.8),
	}
	e := newTestEngine()

	onlyCourses := e.RankWithFilters(context.Background(), items, core.UserProfile{}, Filters{
		ContentTypes: []core.ContentType{core.TypeCourse},
		MinQuality:   DefaultMinQuality,
	})
	assert.Equal(t, []string{"c"}, ids(onlyCourses))

	onlyBeginner := e.RankWithFilters(context.Background(), items, core.UserProfile{}, Filters{
		Difficulty: core.DifficultyBeginner,
		MinQuality: DefaultMinQuality,
	})
	assert.Equal(t, []string{"v"}, ids(onlyBeginner))
}

func TestEngine_DefaultFilters(t *testing.T) {
	e := NewEngine(WithMinQuality(0.5))
	f := e.DefaultFilters(core.UserProfile{Preferences: &core.Preferences{
		Budget:               core.BudgetFree,
		DifficultyPreference: core.DifficultyGradual,
	}})

	assert.Equal(t, Filters{Budget: core.BudgetFree, ExcludeExpert: true, MinQuality: 0.5}, f)
}

func TestEngine_DropsInvalidItems(t *testing.T) {
	noTitle := video("x", "", 0.9)
	noDetails := video("y", "Missing details", 0.9)
	noDetails.Video = nil
	badQuality := video("z", "Broken score", 1.5)

	got := newTestEngine().Rank(context.Background(),
		[]core.ContentItem{noTitle, noDetails, badQuality, video("ok", "Fine", 0.9)},
		core.UserProfile{})
	assert.Equal(t, []string{"ok"}, ids(got))
}

func TestEngine_DeterministicAndStable(t *testing.T) {
	profile := core.UserProfile{
		Skills:      map[string]core.SkillRecord{"go": {Level: core.SkillIntermediate, Confidence: 0.5}},
		CareerGoals: []string{"software engineer"},
	}
	// Identical scoring inputs except id, url and title, so ties must keep input order.
	items := []core.ContentItem{
		video("t1", "alpha lesson", 0.6, "go"),
		video("t2", "beta lesson", 0.6, "go"),
		video("t3", "gamma lesson", 0.6, "go"),
		video("hi", "go software engineering", 0.95, "go", "software"),
	}

	e := newTestEngine()
	first := ids(e.Rank(context.Background(), items, profile))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ids(e.Rank(context.Background(), items, profile)))
	}
	assert.Equal(t, []string{"hi", "t1", "t2", "t3"}, first)
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	items := []core.ContentItem{video("a", "Some video", 0.8, "go")}
	_ = newTestEngine().Rank(context.Background(), items, core.UserProfile{})
	assert.Nil(t, items[0].Scores)
	assert.Zero(t, items[0].Composite)
}
