package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is one rewrite transaction. Created at polish time with the
// final-script fields unset; amended exactly once by the correction loop.
type HistoryRecord struct {
	ID               uuid.UUID
	UserID           string
	RawScript        string
	AIPolishedScript string
	UserFinalScript  *string
	VoiceExampleID   *uuid.UUID
	CreatedAt        time.Time
	CorrectedAt      *time.Time
}

// InsertHistory records a completed rewrite.
func (s *Store) InsertHistory(ctx context.Context, rec HistoryRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO polish_history (id, user_id, raw_script, ai_polished_script, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.UserID, rec.RawScript, rec.AIPolishedScript, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert polish_history: %w", err)
	}
	return nil
}

// AttachCorrection links the user's final script and its derived example to a
// history record. The filter on user_id is the ownership check: the update
// cannot land on another user's record. The user_final_script IS NULL guard
// keeps the record immutable after its one amendment. Returns false when no
// row matched.
func (s *Store) AttachCorrection(ctx context.Context, historyID uuid.UUID, userID, finalScript string, exampleID uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE polish_history
		SET user_final_script = $1, voice_example_id = $2, corrected_at = now()
		WHERE id = $3 AND user_id = $4 AND user_final_script IS NULL`,
		finalScript, exampleID, historyID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("update polish_history: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListHistory returns a user's most recent rewrite transactions.
func (s *Store) ListHistory(ctx context.Context, userID string, limit int) ([]HistoryRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, raw_script, ai_polished_script, user_final_script, voice_example_id, created_at, corrected_at
		FROM polish_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select polish_history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.RawScript, &rec.AIPolishedScript,
			&rec.UserFinalScript, &rec.VoiceExampleID, &rec.CreatedAt, &rec.CorrectedAt); err != nil {
			return nil, fmt.Errorf("scan polish_history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}
