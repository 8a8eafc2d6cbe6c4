// Package processor orchestrates the three operations of the voice-learning
// loop: polishing a script, analyzing a user's voice, and recording a manual
// correction.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/voiceloop/quill/internal/events"
	"github.com/voiceloop/quill/internal/examples"
	"github.com/voiceloop/quill/internal/feedback"
	"github.com/voiceloop/quill/internal/store"
	"github.com/voiceloop/quill/internal/topic"
	"github.com/voiceloop/quill/internal/voice"
)

// Style-conditioning modes. Pattern mode is the default and requires a stored
// profile; example mode works with whatever examples exist, including none.
const (
	ModePattern  = "pattern"
	ModeExamples = "examples"
)

// ErrInvalidMode is a validation error for an unrecognized mode value.
var ErrInvalidMode = errors.New("mode must be \"pattern\" or \"examples\"")

// Store is the persistence surface the processor needs.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*store.ProfileRecord, error)
	SaveProfile(ctx context.Context, userID string, patterns []byte, extractedAt time.Time) error
	ListExampleTexts(ctx context.Context, userID string) ([]string, error)
	InsertExample(ctx context.Context, ex store.VoiceExample) error
	InsertHistory(ctx context.Context, rec store.HistoryRecord) error
	AttachCorrection(ctx context.Context, historyID uuid.UUID, userID, finalScript string, exampleID uuid.UUID) (bool, error)
	ListHistory(ctx context.Context, userID string, limit int) ([]store.HistoryRecord, error)
}

// Publisher pushes learning-loop events. May be nil when events are not
// configured.
type Publisher interface {
	Publish(subject string, data any) error
}

type Processor struct {
	store      Store
	classifier *topic.Classifier
	selector   *examples.Selector
	extractor  *voice.Extractor
	polisher   *voice.Polisher
	events     Publisher
	logger     *slog.Logger
}

func New(s Store, classifier *topic.Classifier, selector *examples.Selector, extractor *voice.Extractor, polisher *voice.Polisher, ev Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		store:      s,
		classifier: classifier,
		selector:   selector,
		extractor:  extractor,
		polisher:   polisher,
		events:     ev,
		logger:     logger,
	}
}

// PolishResult is the caller-visible outcome of one rewrite. HistoryID is
// empty when the bookkeeping write failed; the polished script is returned
// regardless.
type PolishResult struct {
	PolishedScript string
	HistoryID      string
}

// Polish rewrites rawScript into the user's voice. Within one call the order
// is fixed: resolve style, then generate, then record history.
func (p *Processor) Polish(ctx context.Context, userID, rawScript, mode string) (*PolishResult, error) {
	source, err := p.resolveStyleSource(ctx, userID, rawScript, mode)
	if err != nil {
		return nil, err
	}

	polished, err := p.polisher.Polish(ctx, rawScript, source)
	if err != nil {
		return nil, fmt.Errorf("polish script: %w", err)
	}

	result := &PolishResult{PolishedScript: polished}

	// History is bookkeeping; the user's result matters more. Log and move on
	// if the write fails.
	historyID := uuid.New()
	rec := store.HistoryRecord{
		ID:               historyID,
		UserID:           userID,
		RawScript:        rawScript,
		AIPolishedScript: polished,
		CreatedAt:        time.Now().UTC(),
	}
	if err := p.store.InsertHistory(ctx, rec); err != nil {
		p.logger.Error("failed to record polish history", "user_id", userID, "error", err)
	} else {
		result.HistoryID = historyID.String()
	}

	p.publish(events.SubjectPolishCompleted, map[string]any{
		"user_id":    userID,
		"history_id": result.HistoryID,
		"mode":       mode,
	})

	return result, nil
}

func (p *Processor) resolveStyleSource(ctx context.Context, userID, rawScript, mode string) (voice.StyleSource, error) {
	switch mode {
	case "", ModePattern:
		rec, err := p.store.GetProfile(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load voice profile: %w", err)
		}
		if rec == nil {
			return nil, voice.ErrNoVoiceProfile
		}
		profile, err := voice.ParseProfile(rec.Patterns)
		if err != nil {
			return nil, fmt.Errorf("stored voice profile: %w", err)
		}
		return voice.PatternSource{Profile: profile}, nil

	case ModeExamples:
		t := p.classifier.Classify(ctx, rawScript)
		texts := p.selector.SelectBest(ctx, userID, t)
		return voice.ExampleSource{Examples: texts}, nil

	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMode, mode)
	}
}

// AnalyzeVoice extracts a fresh voice profile from all of the user's stored
// examples and persists it as the new single source of truth.
func (p *Processor) AnalyzeVoice(ctx context.Context, userID string) (*voice.Profile, error) {
	texts, err := p.store.ListExampleTexts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load examples: %w", err)
	}

	profile, err := p.extractor.Extract(ctx, texts)
	if err != nil {
		return nil, err
	}

	blob, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := p.store.SaveProfile(ctx, userID, blob, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	p.logger.Info("voice profile replaced", "user_id", userID, "examples", len(texts))

	p.publish(events.SubjectAnalysisCompleted, map[string]any{
		"user_id":  userID,
		"examples": len(texts),
	})

	return profile, nil
}

// CorrectionResult is the outcome of recording one manual correction.
type CorrectionResult struct {
	ExampleID    string
	QualityScore int
	Topic        string
}

// RecordCorrection turns the user's finalized script into a new ranked
// example and links it back to the originating rewrite. The example insert is
// the one write that must succeed; losing it would defeat the loop. The
// history linkage is informational and best-effort.
func (p *Processor) RecordCorrection(ctx context.Context, historyID uuid.UUID, userID, aiScript, finalScript string) (*CorrectionResult, error) {
	score := feedback.QualityScore(aiScript, finalScript)
	// The human-approved text is the authoritative topic signal, not the raw
	// script that started the transaction.
	topicLabel := p.classifier.Classify(ctx, finalScript)

	ex := store.VoiceExample{
		ID:            uuid.New(),
		UserID:        userID,
		ScriptText:    finalScript,
		TopicCategory: topicLabel,
		QualityScore:  score,
		WordCount:     feedback.WordCount(finalScript),
		CreatedAt:     time.Now().UTC(),
	}
	if err := p.store.InsertExample(ctx, ex); err != nil {
		return nil, fmt.Errorf("insert voice example: %w", err)
	}

	updated, err := p.store.AttachCorrection(ctx, historyID, userID, finalScript, ex.ID)
	if err != nil {
		p.logger.Error("failed to link correction to history",
			"history_id", historyID, "user_id", userID, "error", err)
	} else if !updated {
		p.logger.Warn("no history record matched for correction",
			"history_id", historyID, "user_id", userID)
	}

	p.logger.Info("correction recorded",
		"user_id", userID,
		"quality_score", score,
		"topic", topicLabel,
	)

	p.publish(events.SubjectCorrectionRecorded, map[string]any{
		"user_id":       userID,
		"example_id":    ex.ID.String(),
		"quality_score": score,
		"topic":         topicLabel,
	})

	return &CorrectionResult{
		ExampleID:    ex.ID.String(),
		QualityScore: score,
		Topic:        topicLabel,
	}, nil
}

// ListHistory returns the user's recent rewrite transactions.
func (p *Processor) ListHistory(ctx context.Context, userID string, limit int) ([]store.HistoryRecord, error) {
	return p.store.ListHistory(ctx, userID, limit)
}

func (p *Processor) publish(subject string, data any) {
	if p.events == nil {
		return
	}
	if err := p.events.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
