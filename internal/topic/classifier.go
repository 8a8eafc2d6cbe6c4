// Package topic buckets scripts into a fixed category set used for example
// ranking. Classification is a single cheap LLM call guarded by a hard
// allow-list: the model's answer is never trusted verbatim.
package topic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voiceloop/quill/internal/anthropic"
)

// Other is the safe fallback label. Classification failures of any kind
// degrade to it; they are never surfaced to the caller.
const Other = "Other"

// Labels is the closed category set. The classifier prompt enumerates exactly
// these, and anything else coming back from the model is forced to Other.
var Labels = []string{
	"Productivity",
	"Tech",
	"Finance",
	"Student Advice",
	"Health",
	"Relationships",
	"Creator Economy",
	"Philosophy",
	Other,
}

// maxClassifyChars bounds how much of the script the classifier sees. The tail
// of a long script does not change its topic.
const maxClassifyChars = 2000

const classifyPrompt = `Classify the topic of this video script. Choose exactly one category from this list:
%s

Respond with only the category label, nothing else.

Script:
---
%s
---`

type Classifier struct {
	llm    *anthropic.Client
	logger *slog.Logger
}

func New(llm *anthropic.Client, logger *slog.Logger) *Classifier {
	return &Classifier{llm: llm, logger: logger}
}

// Classify maps a script to one of Labels. It never fails: provider errors and
// out-of-set answers both come back as Other.
func (c *Classifier) Classify(ctx context.Context, script string) string {
	if r := []rune(script); len(r) > maxClassifyChars {
		script = string(r[:maxClassifyChars])
	}

	prompt := fmt.Sprintf(classifyPrompt, strings.Join(Labels, ", "), script)
	raw, err := c.llm.Complete(ctx, "", []anthropic.Message{{Role: "user", Content: prompt}}, 16, 0)
	if err != nil {
		c.logger.Warn("topic classification failed, defaulting", "label", Other, "error", err)
		return Other
	}

	label := strings.TrimSpace(raw)
	if Valid(label) {
		return label
	}

	c.logger.Warn("classifier returned label outside the category set", "label", label)
	return Other
}

// Valid reports whether label is a member of the fixed category set.
func Valid(label string) bool {
	for _, l := range Labels {
		if label == l {
			return true
		}
	}
	return false
}
