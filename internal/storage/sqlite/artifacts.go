package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sandevgo/edagent/internal/core"
)

func (s *Store) SaveAssessment(ctx context.Context, userID string, a core.SkillAssessment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AssessedAt.IsZero() {
		a.AssessedAt = s.now()
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ensureProfile(ctx, tx, userID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO skill_assessments (id, user_id, skill_area, overall_level, confidence, payload, assessed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, userID, a.SkillArea, string(a.OverallLevel), a.ConfidenceScore, string(payload), formatTime(a.AssessedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return tx.Commit()
}

// LatestAssessment returns nil when the user was never assessed.
func (s *Store) LatestAssessment(ctx context.Context, userID string) (*core.SkillAssessment, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM skill_assessments WHERE user_id = ? ORDER BY assessed_at DESC LIMIT 1`, userID,
	).Scan(&payload)
	if err != nil {
		return nil, noRows(err, "assessment")
	}

	var a core.SkillAssessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	return &a, nil
}

func (s *Store) SaveLearningPath(ctx context.Context, userID string, p core.LearningPath) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal learning path: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ensureProfile(ctx, tx, userID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO learning_paths (id, user_id, goal, title, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, userID, p.Goal, p.Title, string(payload), formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert learning path: %w", err)
	}
	return tx.Commit()
}

// LatestLearningPath returns nil when the user has no saved path.
func (s *Store) LatestLearningPath(ctx context.Context, userID string) (*core.LearningPath, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM learning_paths WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&payload)
	if err != nil {
		return nil, noRows(err, "learning path")
	}

	var p core.LearningPath
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("failed to decode learning path: %w", err)
	}
	return &p, nil
}
