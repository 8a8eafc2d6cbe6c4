// Package examples picks the stored scripts most representative of a user's
// voice for a given topic.
package examples

import (
	"context"
	"log/slog"

	"github.com/voiceloop/quill/internal/topic"
)

// MaxExamples caps how many reference scripts a rewrite prompt may embed.
const MaxExamples = 5

// Lister is the slice of the store the selector needs.
type Lister interface {
	ListRankedExamples(ctx context.Context, userID, topicLabel string, prioritizeTopic bool, limit int) ([]string, error)
}

type Selector struct {
	store  Lister
	logger *slog.Logger
}

func New(store Lister, logger *slog.Logger) *Selector {
	return &Selector{store: store, logger: logger}
}

// SelectBest returns up to MaxExamples script texts for the user, ordered by
// topic match, then quality, then recency. Topic prioritization is skipped
// when the requested topic is Other: an Other request carries no relevance
// signal worth sorting on. Retrieval failure degrades to an empty list; the
// rewrite proceeds without references rather than failing.
func (s *Selector) SelectBest(ctx context.Context, userID, topicLabel string) []string {
	prioritize := topicLabel != topic.Other && topic.Valid(topicLabel)

	texts, err := s.store.ListRankedExamples(ctx, userID, topicLabel, prioritize, MaxExamples)
	if err != nil {
		s.logger.Warn("example retrieval failed, continuing without references",
			"user_id", userID,
			"topic", topicLabel,
			"error", err,
		)
		return nil
	}
	return texts
}
