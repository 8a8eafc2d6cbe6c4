package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ProfileRecord is a stored voice pattern document plus its extraction stamp.
type ProfileRecord struct {
	UserID      string
	Patterns    []byte
	ExtractedAt time.Time
}

// GetProfile fetches the user's voice profile. Returns (nil, nil) when the
// user has never run voice analysis.
func (s *Store) GetProfile(ctx context.Context, userID string) (*ProfileRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, patterns, extracted_at
		FROM voice_profiles
		WHERE user_id = $1`,
		userID,
	)

	var rec ProfileRecord
	err := row.Scan(&rec.UserID, &rec.Patterns, &rec.ExtractedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select voice_profile: %w", err)
	}
	return &rec, nil
}

// SaveProfile replaces the user's voice profile wholesale. The profile is the
// single source of truth for pattern-mode rewrites, so there is no partial
// update path.
func (s *Store) SaveProfile(ctx context.Context, userID string, patterns []byte, extractedAt time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO voice_profiles (user_id, patterns, extracted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET patterns = $2, extracted_at = $3`,
		userID, patterns, extractedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert voice_profile: %w", err)
	}
	return nil
}
