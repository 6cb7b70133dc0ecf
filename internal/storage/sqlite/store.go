package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/edagent/internal/core"
)

const timeLayout = time.RFC3339Nano

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store implements core.UserContextStore and core.HistoryReader.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Store) ensureProfile(ctx context.Context, ex execer, userID string) error {
	now := formatTime(s.now())
	_, err := ex.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_profiles (user_id, career_goals, created_at, updated_at) VALUES (?, '[]', ?, ?)`,
		userID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure profile: %w", err)
	}
	return nil
}

// GetProfile returns an empty profile for users never seen before.
func (s *Store) GetProfile(ctx context.Context, userID string) (core.UserProfile, error) {
	profile := core.NewUserProfile(userID)

	var goalsJSON string
	var prefsJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT career_goals, preferences FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&goalsJSON, &prefsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, nil
	}
	if err != nil {
		return profile, fmt.Errorf("failed to load profile: %w", err)
	}

	if goalsJSON != "" {
		if err := json.Unmarshal([]byte(goalsJSON), &profile.CareerGoals); err != nil {
			return profile, fmt.Errorf("failed to decode career goals: %w", err)
		}
	}
	if prefsJSON.Valid && prefsJSON.String != "" {
		var prefs core.Preferences
		if err := json.Unmarshal([]byte(prefsJSON.String), &prefs); err != nil {
			return profile, fmt.Errorf("failed to decode preferences: %w", err)
		}
		if !prefs.IsEmpty() {
			profile.Preferences = &prefs
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT skill_name, level, confidence, updated_at FROM user_skills WHERE user_id = ?`, userID,
	)
	if err != nil {
		return profile, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]core.SkillRecord)
	for rows.Next() {
		var name, level, updated string
		var rec core.SkillRecord
		if err := rows.Scan(&name, &level, &rec.Confidence, &updated); err != nil {
			return profile, fmt.Errorf("failed to scan skill: %w", err)
		}
		rec.Level = core.SkillLevel(level)
		rec.LastUpdated = parseTime(updated)
		stored[name] = rec
	}
	if err := rows.Err(); err != nil {
		return profile, err
	}
	// rows written before keys were normalized may differ only in case
	profile.Skills = core.NormalizeSkills(stored)
	return profile, nil
}

// SaveProfile replaces goals, preferences and skills of a user.
func (s *Store) SaveProfile(ctx context.Context, profile core.UserProfile) error {
	goals := profile.CareerGoals
	if goals == nil {
		goals = []string{}
	}
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to marshal goals: %w", err)
	}

	var prefs sql.NullString
	if !profile.Preferences.IsEmpty() {
		data, err := json.Marshal(profile.Preferences)
		if err != nil {
			return fmt.Errorf("failed to marshal preferences: %w", err)
		}
		prefs = sql.NullString{String: string(data), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ensureProfile(ctx, tx, profile.UserID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE user_profiles SET career_goals = ?, preferences = ?, updated_at = ? WHERE user_id = ?`,
		string(goalsJSON), prefs, formatTime(s.now()), profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = ?`, profile.UserID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	for name, rec := range core.NormalizeSkills(profile.Skills) {
		updated := rec.LastUpdated
		if updated.IsZero() {
			updated = s.now()
		}
		if err := upsertSkill(ctx, tx, profile.UserID, name, rec.Level, rec.Confidence, updated); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func upsertSkill(ctx context.Context, ex execer, userID, name string, level core.SkillLevel, confidence float64, at time.Time) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO user_skills (user_id, skill_name, level, confidence, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, skill_name) DO UPDATE SET level = excluded.level, confidence = excluded.confidence, updated_at = excluded.updated_at`,
		userID, name, string(level), confidence, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill %s: %w", name, err)
	}
	return nil
}

// UpdateSkills records the assessed area as a skill at the assessed level.
func (s *Store) UpdateSkills(ctx context.Context, userID string, assessment core.SkillAssessment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ensureProfile(ctx, tx, userID); err != nil {
		return err
	}

	at := assessment.AssessedAt
	if at.IsZero() {
		at = s.now()
	}
	if err := upsertSkill(ctx, tx, userID, core.SkillKey(assessment.SkillArea), assessment.OverallLevel, assessment.ConfidenceScore, at); err != nil {
		return err
	}
	return tx.Commit()
}
