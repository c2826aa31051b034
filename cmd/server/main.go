package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/quizrate/backend/internal/auth"
	"github.com/quizrate/backend/internal/config"
	"github.com/quizrate/backend/internal/crypt"
	"github.com/quizrate/backend/internal/embedding"
	"github.com/quizrate/backend/internal/grading"
	"github.com/quizrate/backend/internal/judge"
	"github.com/quizrate/backend/internal/logging"
	"github.com/quizrate/backend/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogFile, cfg.Debug)
	defer logger.Sync()

	// Engine singletons. Any failure here means the process refuses to
	// start rather than serve degraded responses.
	box, err := crypt.New(cfg.AnswerKey)
	if err != nil {
		logger.Fatal("Failed to initialize answer decryption", zap.Error(err))
	}

	embedder, err := embedding.NewProvider(context.Background(), embedding.Options{
		Provider:     cfg.EmbeddingProvider,
		VectorsPath:  cfg.WordVectorsPath,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiEmbedModel,
	})
	if err != nil {
		logger.Fatal("Failed to initialize embedding provider", zap.Error(err))
	}
	logger.Info("Embedding provider ready", zap.String("provider", cfg.EmbeddingProvider))

	judgeClient, model := judge.NewClient(judge.Options{
		Mock:  cfg.MockJudge,
		Model: cfg.AnthropicModel,
	})
	logger.Info("LLM judge ready", zap.String("model", model))

	service := grading.NewService(embedder, judgeClient, box, cfg.LLMTimeout, logger)
	handler := grading.NewHandler(service, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Answer grading service"}`))
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware(cfg.JWTSecret))
	api.HandleFunc("/rate/embedding", handler.RateEmbedding).Methods("POST")
	api.HandleFunc("/rate/llm", handler.RateLLM).Methods("POST")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
