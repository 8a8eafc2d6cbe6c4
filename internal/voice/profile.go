// Package voice holds the core of the service: extracting a structured voice
// pattern profile from a user's example scripts, rendering a style source into
// rewrite instructions, and running the rewrite itself.
package voice

import (
	"encoding/json"
	"fmt"
)

// Profile is the structured description of one user's writing voice. Once a
// profile exists it is the sole authority for pattern-mode rewrites; raw
// examples are not consulted. It is replaced wholesale on re-analysis, never
// patched.
type Profile struct {
	Openings           Openings           `json:"openings"`
	Transitions        Transitions        `json:"transitions"`
	SentenceStructure  SentenceStructure  `json:"sentence_structure"`
	EmphasisTechniques EmphasisTechniques `json:"emphasis_techniques"`
	Vocabulary         Vocabulary         `json:"vocabulary"`
	Pacing             Pacing             `json:"pacing"`
	Conclusions        Conclusions        `json:"conclusions"`
	PersonalityMarkers PersonalityMarkers `json:"personality_markers"`
}

type Openings struct {
	CommonPhrases []string `json:"common_phrases"`
	Style         string   `json:"style"`
}

type Transitions struct {
	CommonWords []string `json:"common_words"`
	AvoidWords  []string `json:"avoid_words"`
}

type SentenceStructure struct {
	AvgLengthWords          float64 `json:"avg_length_words"`
	UsesFragments           bool    `json:"uses_fragments"`
	UsesRhetoricalQuestions bool    `json:"uses_rhetorical_questions"`
	Notes                   string  `json:"notes"`
}

type EmphasisTechniques struct {
	Techniques []string `json:"techniques"`
}

type Vocabulary struct {
	SignatureWords []string `json:"signature_words"`
	AvoidWords     []string `json:"avoid_words"`
	Formality      string   `json:"formality"`
}

type Pacing struct {
	Rhythm         string `json:"rhythm"`
	ParagraphStyle string `json:"paragraph_style"`
}

type Conclusions struct {
	CommonPhrases []string `json:"common_phrases"`
	CallToAction  string   `json:"call_to_action"`
}

type PersonalityMarkers struct {
	SelfReference   string   `json:"self_reference"`
	AudienceAddress string   `json:"audience_address"`
	HumorStyle      string   `json:"humor_style"`
	Quirks          []string `json:"quirks"`
}

// requiredSections are the top-level keys a profile document must carry.
var requiredSections = []string{
	"openings",
	"transitions",
	"sentence_structure",
	"emphasis_techniques",
	"vocabulary",
	"pacing",
	"conclusions",
	"personality_markers",
}

// ParseProfile decodes and validates a profile document. All eight sections
// must be present; anything less is a parse failure, never a partial profile.
func ParseProfile(raw []byte) (*Profile, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrExtractionFailed, err)
	}
	for _, key := range requiredSections {
		if _, ok := sections[key]; !ok {
			return nil, fmt.Errorf("%w: missing section %q", ErrExtractionFailed, key)
		}
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return &p, nil
}
