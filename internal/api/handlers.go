package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/voiceloop/quill/internal/processor"
	"github.com/voiceloop/quill/internal/voice"
)

type polishRequest struct {
	UserID    string `json:"user_id"`
	RawScript string `json:"raw_script"`
	Mode      string `json:"mode,omitempty"`
}

type polishResponse struct {
	PolishedScript string `json:"polished_script"`
	HistoryID      string `json:"history_id,omitempty"`
}

func (s *Server) handlePolish(w http.ResponseWriter, r *http.Request) {
	var req polishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.RawScript == "" {
		writeError(w, http.StatusBadRequest, "raw_script is required")
		return
	}

	result, err := s.proc.Polish(r.Context(), req.UserID, req.RawScript, req.Mode)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, polishResponse{
		PolishedScript: result.PolishedScript,
		HistoryID:      result.HistoryID,
	})
}

type analyzeRequest struct {
	UserID string `json:"user_id"`
}

type analyzeResponse struct {
	Message  string         `json:"message"`
	Patterns *voice.Profile `json:"patterns"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	profile, err := s.proc.AnalyzeVoice(r.Context(), req.UserID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Message:  "voice analysis complete",
		Patterns: profile,
	})
}

type correctionRequest struct {
	HistoryID        string `json:"history_id"`
	AIPolishedScript string `json:"ai_polished_script"`
	UserFinalScript  string `json:"user_final_script"`
	UserID           string `json:"user_id"`
}

type correctionResponse struct {
	Message         string `json:"message"`
	NewExampleID    string `json:"new_example_id"`
	NewQualityScore int    `json:"new_quality_score"`
	NewTopic        string `json:"new_topic"`
}

func (s *Server) handleCorrection(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.HistoryID == "" || req.AIPolishedScript == "" || req.UserFinalScript == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "history_id, ai_polished_script, user_final_script and user_id are required")
		return
	}

	historyID, err := uuid.Parse(req.HistoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history_id")
		return
	}

	result, err := s.proc.RecordCorrection(r.Context(), historyID, req.UserID, req.AIPolishedScript, req.UserFinalScript)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, correctionResponse{
		Message:         "correction recorded",
		NewExampleID:    result.ExampleID,
		NewQualityScore: result.QualityScore,
		NewTopic:        result.Topic,
	})
}

type historyEntry struct {
	ID               string `json:"id"`
	RawScript        string `json:"raw_script"`
	AIPolishedScript string `json:"ai_polished_script"`
	UserFinalScript  string `json:"user_final_script,omitempty"`
	VoiceExampleID   string `json:"voice_example_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	records, err := s.proc.ListHistory(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		e := historyEntry{
			ID:               rec.ID.String(),
			RawScript:        rec.RawScript,
			AIPolishedScript: rec.AIPolishedScript,
			CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		}
		if rec.UserFinalScript != nil {
			e.UserFinalScript = *rec.UserFinalScript
		}
		if rec.VoiceExampleID != nil {
			e.VoiceExampleID = rec.VoiceExampleID.String()
		}
		entries = append(entries, e)
	}

	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// statusForError maps the error taxonomy to HTTP statuses: validation errors
// are the caller's fault, everything else is a generation or storage failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, voice.ErrNoVoiceProfile),
		errors.Is(err, voice.ErrInsufficientExamples),
		errors.Is(err, processor.ErrInvalidMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
