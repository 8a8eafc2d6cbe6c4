package voice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/voiceloop/quill/internal/anthropic"
)

func TestPolish_Success(t *testing.T) {
	pol := NewPolisher(answerWith(t, "  the polished script\n", nil), discardLogger())

	got, err := pol.Polish(context.Background(), "raw script", ExampleSource{Examples: []string{"ex"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the polished script" {
		t.Errorf("expected trimmed polished script, got %q", got)
	}
}

func TestPolish_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{{"type": "text", "text": "recovered"}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)

	pol := NewPolisher(llm, discardLogger())
	got, err := pol.Polish(context.Background(), "raw", ExampleSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("expected recovered, got %q", got)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestPolish_GivesUpAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)

	pol := NewPolisher(llm, discardLogger())
	_, err := pol.Polish(context.Background(), "raw", ExampleSource{})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls.Load() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", calls.Load())
	}
}

func TestPolish_EmptyCompletionNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)

	pol := NewPolisher(llm, discardLogger())
	_, err := pol.Polish(context.Background(), "raw", ExampleSource{})
	if !errors.Is(err, anthropic.ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("empty completion must not be retried, got %d attempts", calls.Load())
	}
}

func TestPolish_PromptCarriesStyleAndScript(t *testing.T) {
	var system, prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			System   string              `json:"system"`
			Messages []anthropic.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			system = req.System
			if len(req.Messages) > 0 {
				prompt = req.Messages[0].Content
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{{"type": "text", "text": "out"}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)

	pol := NewPolisher(llm, discardLogger())
	src := PatternSource{Profile: testProfile(t)}
	if _, err := pol.Polish(context.Background(), "the raw body", src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The invariant rules live in the system prompt regardless of style source.
	for _, want := range []string{"CONTENT ONLY", "Preserve every fact", "rewritten script only"} {
		if !strings.Contains(system, want) {
			t.Errorf("expected system prompt to contain %q", want)
		}
	}
	// Forbidden vocabulary from the active profile must reach the model.
	for _, want := range []string{`"utilize"`, `"leverage"`, `"synergy"`, "the raw body"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected user prompt to contain %q", want)
		}
	}
}
