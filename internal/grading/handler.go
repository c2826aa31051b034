package grading

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/quizrate/backend/internal/models"
)

// Handler exposes the two scoring strategies as separate endpoints so
// callers choose the cost/accuracy/latency tradeoff per request.
type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RateEmbedding(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, "embedding", h.service.RateEmbedding)
}

func (h *Handler) RateLLM(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, "llm", h.service.RateLLM)
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request, strategy string, score func(context.Context, string, string) (int, error)) {
	var req models.GradingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing required fields"})
		return
	}

	rating, err := score(r.Context(), req.UserAnswer, req.CorrectAnswer)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			h.logger.Warn("rejected grading request",
				zap.String("strategy", strategy),
				zap.Error(err),
			)
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: inputErr.Message})
			return
		}

		// Scorer failures are logged with full detail server-side; the
		// client only ever sees the generic message.
		h.logger.Error("failed to rate answer",
			zap.String("strategy", strategy),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to rate the answer"})
		return
	}

	writeJSON(w, http.StatusOK, models.GradingResult{Rating: rating})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
