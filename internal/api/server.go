package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/voiceloop/quill/internal/processor"
)

type Server struct {
	router *chi.Mux
	port   int
	proc   *processor.Processor
	logger *slog.Logger
}

func NewServer(port int, apiToken string, maxBodyBytes int64, limiter *RateLimiter, proc *processor.Processor, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if maxBodyBytes > 0 {
		router.Use(middleware.RequestSize(maxBodyBytes))
	}

	s := &Server{
		router: router,
		port:   port,
		proc:   proc,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/quill/status", s.status)

	router.Group(func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post("/api/v1/polish", s.handlePolish)
		r.Post("/api/v1/voice/analyze", s.handleAnalyze)
		r.Post("/api/v1/corrections", s.handleCorrection)
		r.Get("/api/v1/history", s.handleHistory)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "quill",
		"status":  "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
