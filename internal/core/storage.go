package core

import (
	"context"
	"time"
)

type ConversationTurn struct {
	ID           int64          `json:"id"`
	UserID       string         `json:"user_id"`
	Message      string         `json:"message"`
	Response     string         `json:"response"`
	ResponseType ResponseType   `json:"response_type"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// UserContextStore persists profiles and conversation artifacts.
// GetProfile returns an empty profile for unknown users.
type UserContextStore interface {
	GetProfile(ctx context.Context, userID string) (UserProfile, error)
	UpdateSkills(ctx context.Context, userID string, assessment SkillAssessment) error
	SaveAssessment(ctx context.Context, userID string, assessment SkillAssessment) error
	SaveLearningPath(ctx context.Context, userID string, path LearningPath) error
	AppendConversationTurn(ctx context.Context, userID, message string, response Response) error
}

// HistoryReader returns up to limit most recent turns, oldest first.
type HistoryReader interface {
	RecentTurns(ctx context.Context, userID string, limit int) ([]ConversationTurn, error)
}
