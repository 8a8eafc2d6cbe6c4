// Package feedback turns a user's manual correction into a training signal for
// the voice-learning loop.
package feedback

import (
	"math"
	"strings"

	"github.com/antzucaro/matchr"
)

// QualityScore measures how far the user's final script diverged from the AI
// output, on a 0-100 scale. 0 means the user kept the AI output as-is; 100
// means heavy rewriting.
//
// The formula is min(100, round(levenshtein(ai, final) / len(ai) * 1000)).
// It is a divergence heuristic, not a normalized similarity: short AI outputs
// with large edits saturate at the cap, and the metric is asymmetric in its
// arguments. Changing it would skew comparisons against stored scores.
func QualityScore(aiScript, finalScript string) int {
	if aiScript == "" {
		if finalScript == "" {
			return 0
		}
		return 100
	}

	distance := matchr.Levenshtein(aiScript, finalScript)
	score := int(math.Round(float64(distance) / float64(len([]rune(aiScript))) * 1000))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
