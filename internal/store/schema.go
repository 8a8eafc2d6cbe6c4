package store

import (
	"context"
	"fmt"
)

const ddl = `
CREATE TABLE IF NOT EXISTS voice_profiles (
    user_id      TEXT         PRIMARY KEY,
    patterns     JSONB        NOT NULL,
    extracted_at TIMESTAMPTZ  NOT NULL
);

CREATE TABLE IF NOT EXISTS voice_examples (
    id             UUID         PRIMARY KEY,
    user_id        TEXT         NOT NULL,
    script_text    TEXT         NOT NULL,
    topic_category TEXT         NOT NULL,
    quality_score  INT          NOT NULL CHECK (quality_score BETWEEN 0 AND 100),
    word_count     INT          NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_voice_examples_user
    ON voice_examples (user_id);

CREATE INDEX IF NOT EXISTS idx_voice_examples_user_topic
    ON voice_examples (user_id, topic_category);

CREATE TABLE IF NOT EXISTS polish_history (
    id                  UUID         PRIMARY KEY,
    user_id             TEXT         NOT NULL,
    raw_script          TEXT         NOT NULL,
    ai_polished_script  TEXT         NOT NULL,
    user_final_script   TEXT,
    voice_example_id    UUID,
    created_at          TIMESTAMPTZ  NOT NULL DEFAULT now(),
    corrected_at        TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_polish_history_user
    ON polish_history (user_id, created_at DESC);
`

// EnsureSchema creates the tables and indexes if they do not exist. Idempotent;
// runs once at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
