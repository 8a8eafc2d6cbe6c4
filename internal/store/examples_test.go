package store

import (
	"strings"
	"testing"
)

func TestRankedExamplesSQL_TopicPrioritized(t *testing.T) {
	query, args, err := rankedExamplesSQL("user-1", "Finance", true, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "(topic_category = $2) DESC") {
		t.Errorf("expected topic-match ordering key, got %q", query)
	}
	topicIdx := strings.Index(query, "topic_category =")
	qualityIdx := strings.Index(query, "quality_score DESC")
	recencyIdx := strings.Index(query, "created_at DESC")
	if !(topicIdx < qualityIdx && qualityIdx < recencyIdx) {
		t.Errorf("expected topic, then quality, then recency ordering, got %q", query)
	}
	if !strings.Contains(query, "LIMIT 5") {
		t.Errorf("expected LIMIT 5, got %q", query)
	}
	if len(args) != 2 || args[0] != "user-1" || args[1] != "Finance" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestRankedExamplesSQL_TopicSkipped(t *testing.T) {
	// When the requested topic is Other, ranking falls straight through to
	// quality and recency.
	query, args, err := rankedExamplesSQL("user-1", "Other", false, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(query, "topic_category") {
		t.Errorf("expected no topic ordering key, got %q", query)
	}
	qualityIdx := strings.Index(query, "quality_score DESC")
	recencyIdx := strings.Index(query, "created_at DESC")
	if qualityIdx == -1 || recencyIdx == -1 || qualityIdx > recencyIdx {
		t.Errorf("expected quality then recency ordering, got %q", query)
	}
	if len(args) != 1 || args[0] != "user-1" {
		t.Errorf("unexpected args: %v", args)
	}
}
