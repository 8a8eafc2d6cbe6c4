package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voiceloop/quill/internal/anthropic"
)

const (
	polishMaxTokens = 4096
	// Moderate-low: faithful pattern adherence beats creative variance.
	polishTemperature = 0.4
	// Total attempts for transient provider failures.
	polishAttempts = 3
)

type Polisher struct {
	llm    *anthropic.Client
	logger *slog.Logger
}

func NewPolisher(llm *anthropic.Client, logger *slog.Logger) *Polisher {
	return &Polisher{llm: llm, logger: logger}
}

// Polish rewrites rawScript into the voice described by source. Transient
// provider failures are retried up to polishAttempts total; an empty
// completion is a hard error and is never retried.
func (p *Polisher) Polish(ctx context.Context, rawScript string, source StyleSource) (string, error) {
	prompt := buildPolishPrompt(rawScript, source)
	messages := []anthropic.Message{{Role: "user", Content: prompt}}

	var lastErr error
	for attempt := 1; attempt <= polishAttempts; attempt++ {
		text, err := p.llm.Complete(ctx, polishSystemPrompt, messages, polishMaxTokens, polishTemperature)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		if errors.Is(err, anthropic.ErrEmptyCompletion) {
			return "", err
		}
		lastErr = err
		p.logger.Warn("polish attempt failed", "attempt", attempt, "error", err)
	}

	return "", fmt.Errorf("polish after %d attempts: %w", polishAttempts, lastErr)
}

func buildPolishPrompt(rawScript string, source StyleSource) string {
	var b strings.Builder
	b.WriteString(source.Instructions())
	b.WriteString("\nRaw script to rewrite:\n---\n")
	b.WriteString(rawScript)
	b.WriteString("\n---")
	return b.String()
}
