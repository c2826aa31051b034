package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs before it can accept traffic.
// All of it is read once at startup and never mutated afterwards.
type Config struct {
	Port        string
	CORSOrigins []string

	LogFile string
	Debug   bool

	JWTSecret []byte
	AnswerKey []byte // symmetric key for the encrypted correct answer

	EmbeddingProvider string // "wordvec", "gemini" or "mock"
	WordVectorsPath   string
	GeminiAPIKey      string
	GeminiEmbedModel  string

	MockJudge      bool
	AnthropicModel string
	LLMTimeout     time.Duration
}

// Load reads .env (if present) and the environment. It returns an error for
// anything that would make the server serve degraded responses; callers are
// expected to treat that as fatal.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		LogFile:           getEnv("LOG_FILE", "logs/app.log"),
		Debug:             os.Getenv("DEBUG") == "true",
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "wordvec"),
		WordVectorsPath:   getEnv("WORD_VECTORS_PATH", "models/vectors.txt"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiEmbedModel:  getEnv("GEMINI_EMBED_MODEL", "gemini-embedding-001"),
		MockJudge:         os.Getenv("MOCK_JUDGE") == "true",
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWTSecret = []byte(secret)

	keyB64 := os.Getenv("ANSWER_KEY")
	if keyB64 == "" {
		return nil, fmt.Errorf("ANSWER_KEY is required")
	}
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("ANSWER_KEY is not valid base64: %w", err)
	}
	cfg.AnswerKey = key

	timeout := getEnv("LLM_TIMEOUT", "30s")
	cfg.LLMTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT %q is not a valid duration: %w", timeout, err)
	}

	switch cfg.EmbeddingProvider {
	case "wordvec", "gemini", "mock":
	default:
		return nil, fmt.Errorf("EMBEDDING_PROVIDER must be 'wordvec', 'gemini' or 'mock', got %q", cfg.EmbeddingProvider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
