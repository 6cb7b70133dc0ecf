package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore(10, time.Minute)

	turn, err := s.Acquire(context.Background(), "u1")
	require.NoError(t, err)

	c := turn.Snapshot()
	assert.Equal(t, ModeIdle, c.Mode)
	c.Mode = ModeInAssessment
	c.Assessment = &assessment.Session{Status: core.AssessmentActive}

	peeked, ok := s.Peek("u1")
	require.True(t, ok)
	assert.Equal(t, ModeIdle, peeked.Mode, "uncommitted changes are invisible")

	require.True(t, turn.Commit(c))
	turn.Release()

	c.Assessment.Responses = append(c.Assessment.Responses, "mutated after commit")

	peeked, ok = s.Peek("u1")
	require.True(t, ok)
	assert.Equal(t, ModeInAssessment, peeked.Mode)
	assert.Empty(t, peeked.Assessment.Responses)
}

func TestStore_AcquireSerializesTurns(t *testing.T) {
	s := NewStore(10, time.Minute)

	first, err := s.Acquire(context.Background(), "u1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Acquire(ctx, "u1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := s.Acquire(context.Background(), "u2")
	require.NoError(t, err, "other users are independent")
	other.Release()

	first.Release()
	second, err := s.Acquire(context.Background(), "u1")
	require.NoError(t, err)
	second.Release()
}

func TestStore_ConcurrentCounter(t *testing.T) {
	s := NewStore(10, time.Minute)

	const turns = 50
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			turn, err := s.Acquire(context.Background(), "u1")
			if err != nil {
				return
			}
			defer turn.Release()
			c := turn.Snapshot()
			c.MessageCount++
			turn.Commit(c)
		}()
	}
	wg.Wait()

	c, ok := s.Peek("u1")
	require.True(t, ok)
	assert.Equal(t, turns, c.MessageCount)
}

func TestStore_ResetBlocksInFlightCommit(t *testing.T) {
	s := NewStore(10, time.Minute)

	turn, err := s.Acquire(context.Background(), "u1")
	require.NoError(t, err)
	c := turn.Snapshot()
	c.MessageCount = 7

	s.Reset("u1")

	assert.False(t, turn.Commit(c))
	turn.Release()

	got, ok := s.Peek("u1")
	require.True(t, ok)
	assert.Equal(t, 0, got.MessageCount)
	assert.Equal(t, ModeIdle, got.Mode)
}

func TestStore_EvictionReportsAbandonedAssessment(t *testing.T) {
	var mu sync.Mutex
	var evicted []Conversation
	s := NewStore(1, time.Minute, WithEvictFunc(func(c Conversation) {
		mu.Lock()
		evicted = append(evicted, c)
		mu.Unlock()
	}))

	turn, err := s.Acquire(context.Background(), "u1")
	require.NoError(t, err)
	c := turn.Snapshot()
	c.Mode = ModeInAssessment
	c.Assessment = &assessment.Session{Status: core.AssessmentActive}
	turn.Commit(c)
	turn.Release()

	turn, err = s.Acquire(context.Background(), "u2")
	require.NoError(t, err)
	turn.Release()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, evicted, 1)
	assert.Equal(t, "u1", evicted[0].UserID)
	assert.Equal(t, core.AssessmentAbandoned, evicted[0].Assessment.Status)

	_, ok := s.Peek("u1")
	assert.False(t, ok)
}

func TestStore_InFlightEntrySurvivesEviction(t *testing.T) {
	s := NewStore(1, time.Minute)

	turn, err := s.Acquire(context.Background(), "u1")
	require.NoError(t, err)

	other, err := s.Acquire(context.Background(), "u2")
	require.NoError(t, err)
	other.Release()

	c := turn.Snapshot()
	c.MessageCount = 3
	require.True(t, turn.Commit(c))
	turn.Release()

	got, ok := s.Peek("u1")
	require.True(t, ok)
	assert.Equal(t, 3, got.MessageCount)
}

func TestConversation_Consistent(t *testing.T) {
	active := &assessment.Session{Status: core.AssessmentActive}

	tests := []struct {
		name string
		conv Conversation
		want bool
	}{
		{"Idle", Conversation{Mode: ModeIdle}, true},
		{"Idle with session", Conversation{Mode: ModeIdle, Assessment: active}, false},
		{"Assessment", Conversation{Mode: ModeInAssessment, Assessment: active}, true},
		{"Assessment without session", Conversation{Mode: ModeInAssessment}, false},
		{"Pending goal", Conversation{Mode: ModeCreatingLearningPath, PendingGoal: true}, true},
		{"Unknown mode", Conversation{Mode: "LOST"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conv.Consistent())
		})
	}

	assert.True(t, Conversation{Mode: ModeInAssessment, Assessment: active}.Idle().Consistent())
}
