package voice

import (
	"fmt"
	"strings"
)

// StyleSource is one of the two ways a rewrite can be conditioned: a stored
// voice pattern profile, or a ranked list of raw example scripts. The
// assembler dispatches on the variant; the rewrite call itself is identical.
type StyleSource interface {
	// Instructions renders the style conditioning deterministically. The same
	// source always produces byte-identical instructions.
	Instructions() string
}

// PatternSource conditions the rewrite on a voice pattern profile, rendered
// field by field into explicit numbered rules the model must obey.
type PatternSource struct {
	Profile *Profile
}

func (s PatternSource) Instructions() string {
	p := s.Profile
	var b strings.Builder
	b.WriteString("Rewrite the script following these voice rules exactly:\n")

	n := 0
	rule := func(format string, args ...any) {
		n++
		fmt.Fprintf(&b, "%d. %s\n", n, fmt.Sprintf(format, args...))
	}

	if len(p.Openings.CommonPhrases) > 0 {
		rule("Open with one of these phrases: %s.", quoteList(p.Openings.CommonPhrases))
	}
	if p.Openings.Style != "" {
		rule("Opening style: %s.", p.Openings.Style)
	}
	if len(p.Transitions.CommonWords) > 0 {
		rule("Transition between points using words like: %s.", quoteList(p.Transitions.CommonWords))
	}
	if len(p.Transitions.AvoidWords) > 0 {
		rule("Never use these transition words: %s.", quoteList(p.Transitions.AvoidWords))
	}
	if p.SentenceStructure.AvgLengthWords > 0 {
		rule("Target an average sentence length of about %.0f words.", p.SentenceStructure.AvgLengthWords)
	}
	if p.SentenceStructure.UsesFragments {
		rule("Use sentence fragments for punch.")
	} else {
		rule("Do not use sentence fragments; write complete sentences.")
	}
	if p.SentenceStructure.UsesRhetoricalQuestions {
		rule("Use rhetorical questions to engage the viewer.")
	} else {
		rule("Do not use rhetorical questions.")
	}
	if p.SentenceStructure.Notes != "" {
		rule("Sentence structure: %s.", p.SentenceStructure.Notes)
	}
	if len(p.EmphasisTechniques.Techniques) > 0 {
		rule("Emphasize key points using: %s.", strings.Join(p.EmphasisTechniques.Techniques, "; "))
	}
	if len(p.Vocabulary.SignatureWords) > 0 {
		rule("Work in the creator's signature words where natural: %s.", quoteList(p.Vocabulary.SignatureWords))
	}
	if len(p.Vocabulary.AvoidWords) > 0 {
		rule("Never use these words: %s.", quoteList(p.Vocabulary.AvoidWords))
	}
	if p.Vocabulary.Formality != "" {
		rule("Formality level: %s.", p.Vocabulary.Formality)
	}
	if p.Pacing.Rhythm != "" {
		rule("Pacing: %s.", p.Pacing.Rhythm)
	}
	if p.Pacing.ParagraphStyle != "" {
		rule("Paragraphs: %s.", p.Pacing.ParagraphStyle)
	}
	if len(p.Conclusions.CommonPhrases) > 0 {
		rule("Close with one of these phrases: %s.", quoteList(p.Conclusions.CommonPhrases))
	}
	if p.Conclusions.CallToAction != "" {
		rule("Call to action style: %s.", p.Conclusions.CallToAction)
	}
	if p.PersonalityMarkers.SelfReference != "" {
		rule("Refer to yourself this way: %s.", p.PersonalityMarkers.SelfReference)
	}
	if p.PersonalityMarkers.AudienceAddress != "" {
		rule("Address the audience this way: %s.", p.PersonalityMarkers.AudienceAddress)
	}
	if p.PersonalityMarkers.HumorStyle != "" {
		rule("Humor: %s.", p.PersonalityMarkers.HumorStyle)
	}
	if len(p.PersonalityMarkers.Quirks) > 0 {
		rule("Keep these quirks: %s.", strings.Join(p.PersonalityMarkers.Quirks, "; "))
	}

	return b.String()
}

// ExampleSource conditions the rewrite on up to five ranked raw examples,
// embedded verbatim as gold-standard references. With no examples it falls
// back to a generic framing rather than erroring.
type ExampleSource struct {
	Examples []string
}

func (s ExampleSource) Instructions() string {
	if len(s.Examples) == 0 {
		return "No reference scripts are available for this creator. Rewrite the script in a clear, conversational creator voice.\n"
	}

	var b strings.Builder
	b.WriteString("Here are gold-standard scripts in the target voice. Study their tone, pacing, and personality. Do not copy their content; only their voice.\n\n")
	for i, ex := range s.Examples {
		fmt.Fprintf(&b, "--- Example %d ---\n%s\n\n", i+1, ex)
	}
	b.WriteString("Rewrite the script so it reads like the same person wrote it.\n")
	return b.String()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = fmt.Sprintf("%q", it)
	}
	return strings.Join(quoted, ", ")
}
