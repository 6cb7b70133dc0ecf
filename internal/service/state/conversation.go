package state

import (
	"time"

	"github.com/sandevgo/edagent/internal/service/assessment"
)

type Mode string

const (
	ModeIdle                 Mode = "IDLE"
	ModeInAssessment         Mode = "IN_ASSESSMENT"
	ModeCreatingLearningPath Mode = "CREATING_LEARNING_PATH"
)

// Conversation is the per-user dialogue state. Values are copied in and out
// of the Store; holders never share the Assessment pointer with it.
type Conversation struct {
	UserID       string
	Mode         Mode
	Assessment   *assessment.Session
	PendingGoal  bool
	MessageCount int
	LastActivity time.Time
}

func NewConversation(userID string) Conversation {
	return Conversation{UserID: userID, Mode: ModeIdle}
}

func (c Conversation) Clone() Conversation {
	c.Assessment = c.Assessment.Clone()
	return c
}

// Idle drops any in-progress flow but keeps the counters.
func (c Conversation) Idle() Conversation {
	c.Mode = ModeIdle
	c.Assessment = nil
	c.PendingGoal = false
	return c
}

// Consistent reports whether mode and flow fields agree.
func (c Conversation) Consistent() bool {
	switch c.Mode {
	case ModeIdle:
		return c.Assessment == nil && !c.PendingGoal
	case ModeInAssessment:
		return c.Assessment != nil && c.Assessment.Consistent() && !c.PendingGoal
	case ModeCreatingLearningPath:
		return c.Assessment == nil && c.PendingGoal
	}
	return false
}
