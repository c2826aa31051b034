package grading

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/quizrate/backend/internal/crypt"
	"github.com/quizrate/backend/internal/embedding"
	"github.com/quizrate/backend/internal/judge"
)

type fixture struct {
	service  *Service
	embedder *embedding.MockProvider
	judge    *judge.MockClient
	box      *crypt.Box
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	key := make([]byte, crypt.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	box, err := crypt.New(key)
	if err != nil {
		t.Fatalf("crypt.New: %v", err)
	}

	embedder := embedding.NewMockProvider()
	judgeClient := judge.NewMockClient("100")
	return &fixture{
		service:  NewService(embedder, judgeClient, box, 5*time.Second, zap.NewNop()),
		embedder: embedder,
		judge:    judgeClient,
		box:      box,
	}
}

func (f *fixture) seal(t *testing.T, plaintext string) string {
	t.Helper()
	sealed, err := f.box.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return sealed
}

func TestExactMatch_ShortCircuitsBothScorers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		user    string
		correct string
	}{
		{"Paris", "Paris"},
		{"Paris ", "paris"},
		{"  PARIS\t", "Paris"},
		{"la ville lumière", "La Ville Lumière"},
	}

	for _, c := range cases {
		sealed := f.seal(t, c.correct)

		rating, err := f.service.RateEmbedding(ctx, c.user, sealed)
		if err != nil {
			t.Fatalf("RateEmbedding(%q vs %q): %v", c.user, c.correct, err)
		}
		if rating != 100 {
			t.Errorf("RateEmbedding(%q vs %q) = %d, want 100", c.user, c.correct, rating)
		}

		rating, err = f.service.RateLLM(ctx, c.user, sealed)
		if err != nil {
			t.Fatalf("RateLLM(%q vs %q): %v", c.user, c.correct, err)
		}
		if rating != 100 {
			t.Errorf("RateLLM(%q vs %q) = %d, want 100", c.user, c.correct, rating)
		}
	}

	if f.embedder.Calls() != 0 {
		t.Errorf("embedding provider called %d times on exact matches, want 0", f.embedder.Calls())
	}
	if f.judge.Calls() != 0 {
		t.Errorf("LLM called %d times on exact matches, want 0", f.judge.Calls())
	}
}

func TestRateEmbedding_ZeroVectorPolicy(t *testing.T) {
	f := newFixture(t)
	f.embedder.Fixed = map[string][]float32{
		"zzgibberish": {0, 0, 0},
		"Paris":       {1, 0, 0},
	}

	rating, err := f.service.RateEmbedding(context.Background(), "zzgibberish", f.seal(t, "Paris"))
	if err != nil {
		t.Fatalf("RateEmbedding: %v", err)
	}
	if rating != 0 {
		t.Errorf("zero-vector input: rating = %d, want 0", rating)
	}
}

func TestRateEmbedding_CosineMapping(t *testing.T) {
	f := newFixture(t)
	f.embedder.Fixed = map[string][]float32{
		"dog":      {1, 0},
		"canine":   {1, 0},
		"opposite": {-1, 0},
		"sideways": {0, 1},
	}
	ctx := context.Background()

	cases := []struct {
		user string
		want int
	}{
		{"canine", 100},  // cosine 1
		{"opposite", 0},  // cosine -1
		{"sideways", 50}, // cosine 0
	}
	for _, c := range cases {
		rating, err := f.service.RateEmbedding(ctx, c.user, f.seal(t, "dog"))
		if err != nil {
			t.Fatalf("RateEmbedding(%q): %v", c.user, err)
		}
		if rating != c.want {
			t.Errorf("RateEmbedding(%q vs dog) = %d, want %d", c.user, rating, c.want)
		}
	}
}

func TestRateEmbedding_ProviderFailureIsScorerError(t *testing.T) {
	f := newFixture(t)
	f.embedder.Err = errors.New("model unavailable")

	_, err := f.service.RateEmbedding(context.Background(), "Paris", f.seal(t, "London"))

	var scorerErr *ScorerError
	if !errors.As(err, &scorerErr) {
		t.Fatalf("got %v, want ScorerError", err)
	}
	if scorerErr.Op != "embedding" {
		t.Errorf("Op = %q, want %q", scorerErr.Op, "embedding")
	}
}

func TestRateLLM_ParsesJudgment(t *testing.T) {
	f := newFixture(t)
	f.judge.Reply = " 85\n"

	rating, err := f.service.RateLLM(context.Background(), "a big city in France", f.seal(t, "Paris"))
	if err != nil {
		t.Fatalf("RateLLM: %v", err)
	}
	if rating != 85 {
		t.Errorf("rating = %d, want 85", rating)
	}
	if f.judge.Calls() != 1 {
		t.Errorf("LLM called %d times, want 1", f.judge.Calls())
	}
}

func TestRateLLM_RejectsBadReplies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sealed := f.seal(t, "Paris")

	// Out-of-range and non-numeric replies are failures, never clamped.
	for _, reply := range []string{"150", "-5", "eighty", "I'd say 90"} {
		f.judge.Reply = reply
		_, err := f.service.RateLLM(ctx, "London", sealed)

		var scorerErr *ScorerError
		if !errors.As(err, &scorerErr) {
			t.Errorf("reply %q: got %v, want ScorerError", reply, err)
		}
	}
}

func TestRateLLM_ProviderFailureIsScorerError(t *testing.T) {
	f := newFixture(t)
	f.judge.Err = errors.New("connection refused")

	_, err := f.service.RateLLM(context.Background(), "London", f.seal(t, "Paris"))

	var scorerErr *ScorerError
	if !errors.As(err, &scorerErr) {
		t.Fatalf("got %v, want ScorerError", err)
	}
}

func TestPrepare_InputErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sealed := f.seal(t, "Paris")

	cases := []struct {
		name       string
		user       string
		ciphertext string
	}{
		{"empty user answer", "", sealed},
		{"whitespace user answer", "   \t", sealed},
		{"empty ciphertext", "Paris", ""},
		{"garbage ciphertext", "Paris", "not-real-ciphertext"},
	}

	for _, c := range cases {
		_, err := f.service.RateEmbedding(ctx, c.user, c.ciphertext)
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Errorf("%s: got %v, want InputError", c.name, err)
		}
	}

	if f.embedder.Calls() != 0 {
		t.Errorf("embedding provider called %d times on invalid input, want 0", f.embedder.Calls())
	}
}

func TestPrepare_WrongKeyCiphertext(t *testing.T) {
	f := newFixture(t)

	otherKey := make([]byte, crypt.KeySize)
	for i := range otherKey {
		otherKey[i] = 0xAA
	}
	otherBox, err := crypt.New(otherKey)
	if err != nil {
		t.Fatalf("crypt.New: %v", err)
	}
	sealed, err := otherBox.Seal("Paris")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	_, err = f.service.RateEmbedding(context.Background(), "Paris", sealed)
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("wrong-key ciphertext: got %v, want InputError", err)
	}
}

func TestRatingFromCosine(t *testing.T) {
	cases := []struct {
		cosine float64
		want   int
	}{
		{1.0, 100},
		{-1.0, 0},
		{0.0, 50},
		{-0.01, 50}, // 49.5 rounds half away from zero
		{0.5, 75},
		{1.0000002, 100}, // float overshoot clamps
		{-1.0000002, 0},
	}
	for _, c := range cases {
		if got := ratingFromCosine(c.cosine); got != c.want {
			t.Errorf("ratingFromCosine(%v) = %d, want %d", c.cosine, got, c.want)
		}
	}
}
