package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// VoiceExample is one user-authored, finalized script sample. Rows are
// append-only; the correction loop is the only writer.
type VoiceExample struct {
	ID            uuid.UUID
	UserID        string
	ScriptText    string
	TopicCategory string
	QualityScore  int
	WordCount     int
	CreatedAt     time.Time
}

// InsertExample appends a new example row.
func (s *Store) InsertExample(ctx context.Context, ex VoiceExample) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO voice_examples (id, user_id, script_text, topic_category, quality_score, word_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ex.ID, ex.UserID, ex.ScriptText, ex.TopicCategory, ex.QualityScore, ex.WordCount, ex.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert voice_example: %w", err)
	}
	return nil
}

// ListExampleTexts returns all of a user's example scripts, most recent first.
// Used as the corpus for voice analysis.
func (s *Store) ListExampleTexts(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT script_text
		FROM voice_examples
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select voice_examples: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan voice_example: %w", err)
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return texts, nil
}

// rankedExamplesSQL builds the ranked selection query. Ranking keys, strongest
// first: topic match (only when prioritizeTopic), quality score, recency.
func rankedExamplesSQL(userID, topicLabel string, prioritizeTopic bool, limit uint64) (string, []any, error) {
	q := sq.Select("script_text").
		From("voice_examples").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		Limit(limit)

	if prioritizeTopic {
		q = q.OrderByClause("(topic_category = ?) DESC", topicLabel)
	}
	q = q.OrderBy("quality_score DESC", "created_at DESC")

	return q.ToSql()
}

// ListRankedExamples returns up to limit example texts for the user, ordered
// by relevance to topicLabel.
func (s *Store) ListRankedExamples(ctx context.Context, userID, topicLabel string, prioritizeTopic bool, limit int) ([]string, error) {
	query, args, err := rankedExamplesSQL(userID, topicLabel, prioritizeTopic, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("build ranked query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select ranked voice_examples: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan voice_example: %w", err)
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return texts, nil
}
