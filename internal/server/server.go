// Package server exposes the drafter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amishk599/replydraft/internal/model"
)

// maxBodyBytes caps the inbound request body.
const maxBodyBytes = 1 << 20

// Drafter produces one reply per request.
type Drafter interface {
	Draft(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error)
}

// Server routes HTTP requests to the drafter. It keeps no per-request state.
type Server struct {
	drafter Drafter
}

// NewServer returns the full handler: routes wrapped in CORS, logging and
// request-id middleware.
func NewServer(drafter Drafter, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{drafter: drafter}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate_reply", s.handleGenerateReply)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID(logger))
}

func (s *Server) handleGenerateReply(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())

	var req model.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("rejecting request body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	resp, err := s.drafter.Draft(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrUpstream) {
			logger.Warn("generation failed", "error", err)
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		logger.Error("draft failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	logger.Debug("reply drafted", "reason", resp.Reason)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
