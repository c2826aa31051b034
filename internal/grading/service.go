package grading

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quizrate/backend/internal/crypt"
	"github.com/quizrate/backend/internal/embedding"
	"github.com/quizrate/backend/internal/judge"
)

// Service is the grading engine. It owns the normalizer and the exact-match
// short-circuit and dispatches to exactly one of the two scoring strategies
// per call; the strategies are alternatives, never combined. All of its
// collaborators are immutable after construction and shared across requests.
type Service struct {
	embedder   embedding.Provider
	judge      judge.Client
	box        *crypt.Box
	llmTimeout time.Duration
	logger     *zap.Logger
}

func NewService(embedder embedding.Provider, judgeClient judge.Client, box *crypt.Box, llmTimeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		embedder:   embedder,
		judge:      judgeClient,
		box:        box,
		llmTimeout: llmTimeout,
		logger:     logger,
	}
}

// RateEmbedding grades via cosine similarity of the two answers' embeddings.
func (s *Service) RateEmbedding(ctx context.Context, userAnswer, correctCiphertext string) (int, error) {
	user, correct, exact, err := s.prepare(userAnswer, correctCiphertext)
	if err != nil {
		return 0, err
	}
	if exact {
		return 100, nil
	}

	userVec, err := s.embedder.Embed(ctx, user)
	if err != nil {
		return 0, &ScorerError{Op: "embedding", Err: err}
	}
	correctVec, err := s.embedder.Embed(ctx, correct)
	if err != nil {
		return 0, &ScorerError{Op: "embedding", Err: err}
	}

	// Empty and out-of-vocabulary texts embed to zero vectors; with no
	// semantic signal to compare, the rating is 0.
	if embedding.Norm(userVec) == 0 || embedding.Norm(correctVec) == 0 {
		return 0, nil
	}

	return ratingFromCosine(embedding.Cosine(userVec, correctVec)), nil
}

// RateLLM grades by asking the configured LLM for a 0-100 judgment. The call
// is bounded by llmTimeout and never retried here.
func (s *Service) RateLLM(ctx context.Context, userAnswer, correctCiphertext string) (int, error) {
	user, correct, exact, err := s.prepare(userAnswer, correctCiphertext)
	if err != nil {
		return 0, err
	}
	if exact {
		return 100, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	completion, err := s.judge.Complete(ctx, judge.SystemPrompt(), judge.BuildUserPrompt(correct, user))
	if err != nil {
		return 0, &ScorerError{Op: "llm", Err: err}
	}

	rating, err := judge.ParseRating(completion)
	if err != nil {
		return 0, &ScorerError{Op: "llm", Err: err}
	}
	return rating, nil
}

// prepare decrypts the correct answer, trims both answers and runs the
// exact-match check on their case-folded forms. The decrypted plaintext is
// returned to the caller's stack only; it is never logged.
func (s *Service) prepare(userAnswer, correctCiphertext string) (user, correct string, exact bool, err error) {
	user = strings.TrimSpace(userAnswer)
	if user == "" {
		return "", "", false, &InputError{Message: "Missing required fields"}
	}
	if strings.TrimSpace(correctCiphertext) == "" {
		return "", "", false, &InputError{Message: "Missing required fields"}
	}

	plaintext, err := s.box.Open(correctCiphertext)
	if err != nil {
		return "", "", false, &InputError{Message: "Invalid answer format", Err: err}
	}
	correct = strings.TrimSpace(plaintext)

	exact = strings.EqualFold(user, correct)
	return user, correct, exact, nil
}

// ratingFromCosine maps cosine similarity in [-1, 1] onto the 0-100 scale.
// Round-half-away-from-zero, then clamp to absorb floating-point overshoot
// at the boundaries.
func ratingFromCosine(cosine float64) int {
	rating := int(math.Round((cosine + 1) * 50))
	if rating < 0 {
		return 0
	}
	if rating > 100 {
		return 100
	}
	return rating
}
