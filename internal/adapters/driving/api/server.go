// Package api exposes the question-answering pipeline over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// Server handles HTTP requests against the answer pipeline.
type Server struct {
	answerer driving.Answerer
}

// NewServer creates a new API server.
func NewServer(answerer driving.Answerer) *Server {
	return &Server{answerer: answerer}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

type askRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger.Debug("[%s] %s %s", requestID, r.Method, r.URL.Path)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		logger.Warn("[%s] answer failed: %v", requestID, err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// statusFor maps pipeline errors onto HTTP status codes. Caller mistakes
// are 4xx, upstream service failures are 502, anything else is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuestion):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmbeddingService),
		errors.Is(err, domain.ErrGenerationService),
		errors.Is(err, domain.ErrIndexUnavailable),
		errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
