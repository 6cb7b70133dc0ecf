package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

func noRows(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func (s *Store) AppendConversationTurn(ctx context.Context, userID, message string, response core.Response) error {
	var metadata sql.NullString
	if len(response.Metadata) > 0 {
		data, err := json.Marshal(response.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = sql.NullString{String: string(data), Valid: true}
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
		`INSERT INTO conversation_turns (user_id, message, response, response_type, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, message, response.Message, string(response.Type), metadata, formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation turn: %w", err)
	}
	return tx.Commit()
}

// RecentTurns returns up to limit turns, oldest first.
func (s *Store) RecentTurns(ctx context.Context, userID string, limit int) ([]core.ConversationTurn, error) {
	if limit <= 0 {
		return nil, nil
	}

	// Fetch the newest 'limit' turns by ordering DESC
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, message, response, response_type, metadata, created_at
		 FROM conversation_turns WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.ConversationTurn
	for rows.Next() {
		turn := core.ConversationTurn{UserID: userID}
		var respType, created string
		var metadata sql.NullString
		if err := rows.Scan(&turn.ID, &turn.Message, &turn.Response, &respType, &metadata, &created); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turn.ResponseType = core.ResponseType(respType)
		turn.CreatedAt = parseTime(created)
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &turn.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata: %w", err)
			}
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Back to chronological order for prompts.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Str("user_id", userID).Msg("loaded conversation turns")
	return turns, nil
}
