package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voiceloop/quill/internal/anthropic"
)

// MinExamples is the floor for voice analysis. One sample is an anecdote, not
// a voice.
const MinExamples = 2

const (
	extractMaxTokens = 4096
	// Extraction wants consistency over creativity.
	extractTemperature = 0.2
)

type Extractor struct {
	llm    *anthropic.Client
	logger *slog.Logger
}

func NewExtractor(llm *anthropic.Client, logger *slog.Logger) *Extractor {
	return &Extractor{llm: llm, logger: logger}
}

// Extract runs one structured-output completion over the example corpus and
// returns the resulting profile. All-or-nothing: a malformed or incomplete
// document is an error, never a partial profile.
func (e *Extractor) Extract(ctx context.Context, examples []string) (*Profile, error) {
	if len(examples) < MinExamples {
		return nil, ErrInsufficientExamples
	}

	var corpus strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&corpus, "--- Script %d ---\n%s\n\n", i+1, ex)
	}

	prompt := fmt.Sprintf(extractUserPrompt, corpus.String())

	e.logger.Info("extracting voice patterns", "examples", len(examples))

	raw, err := e.llm.Complete(ctx, extractSystemPrompt,
		[]anthropic.Message{{Role: "user", Content: prompt}},
		extractMaxTokens, extractTemperature)
	if err != nil {
		return nil, fmt.Errorf("voice extraction: %w", err)
	}

	profile, err := ParseProfile([]byte(raw))
	if err != nil {
		e.logger.Error("extraction returned a malformed profile", "error", err, "raw", raw)
		return nil, err
	}

	return profile, nil
}
