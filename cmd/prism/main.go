package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/config"
	dbRedis "github.com/prism-learn/prism/internal/db/redis"
	"github.com/prism-learn/prism/internal/domain"
	logpkg "github.com/prism-learn/prism/internal/logger"
	"github.com/prism-learn/prism/internal/metrics"
	adminrepo "github.com/prism-learn/prism/internal/repository/admin"
	annotationrepo "github.com/prism-learn/prism/internal/repository/annotation"
	"github.com/prism-learn/prism/internal/repository/artifact"
	"github.com/prism-learn/prism/internal/repository/blob"
	cardrepo "github.com/prism-learn/prism/internal/repository/card"
	chatrepo "github.com/prism-learn/prism/internal/repository/chat"
	documentrepo "github.com/prism-learn/prism/internal/repository/document"
	interviewrepo "github.com/prism-learn/prism/internal/repository/interview"
	noterepo "github.com/prism-learn/prism/internal/repository/note"
	notebookrepo "github.com/prism-learn/prism/internal/repository/notebook"
	vectorrepo "github.com/prism-learn/prism/internal/repository/vector"
	chiTransport "github.com/prism-learn/prism/internal/transport/chi"
	openaiProv "github.com/prism-learn/prism/internal/transport/openai"
	adminuc "github.com/prism-learn/prism/internal/usecase/admin"
	annotationuc "github.com/prism-learn/prism/internal/usecase/annotation"
	carduc "github.com/prism-learn/prism/internal/usecase/card"
	documentuc "github.com/prism-learn/prism/internal/usecase/document"
	evaluateuc "github.com/prism-learn/prism/internal/usecase/evaluate"
	"github.com/prism-learn/prism/internal/usecase/genai"
	healthuc "github.com/prism-learn/prism/internal/usecase/health"
	interviewuc "github.com/prism-learn/prism/internal/usecase/interview"
	mocktestuc "github.com/prism-learn/prism/internal/usecase/mocktest"
	noteuc "github.com/prism-learn/prism/internal/usecase/note"
	notebookuc "github.com/prism-learn/prism/internal/usecase/notebook"
	qauc "github.com/prism-learn/prism/internal/usecase/qa"
	quizuc "github.com/prism-learn/prism/internal/usecase/quiz"
	retrievaluc "github.com/prism-learn/prism/internal/usecase/retrieval"
	"github.com/prism-learn/prism/internal/version"
)

func main() {
	// .env is optional; config files read provider keys via ${VAR} substitution.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting prism API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("blob_driver", cfg.Blob.Driver),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register LLM metrics explicitly (no init())
	metrics.RegisterGenAIMetrics()

	// Providers
	embedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	chatModel := openaiProv.NewChatModel(&openaiProv.ChatConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	logger.Info("Providers created",
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.String("llm_model", cfg.LLM.Model),
	)

	// Blob storage
	blobs, err := newBlobStore(ctx, cfg.Blob)
	if err != nil {
		logger.Fatal("Failed to create blob store", zap.Error(err))
	}

	// Repositories
	prefix := cfg.Storage.KeyPrefix
	notebookRepo := notebookrepo.New(store, prefix)
	documentRepo := documentrepo.New(store, prefix)
	vectorRepo := vectorrepo.New(store, prefix, cfg.Embedding.Dimensions, cfg.Ingest.UpsertBatch)
	chatRepo := chatrepo.New(store, prefix)
	noteRepo := noterepo.New(store, prefix)
	annotationRepo := annotationrepo.New(store, prefix)
	interviewRepo := interviewrepo.New(store, prefix)
	cardRepo := cardrepo.New(store, prefix)
	adminRepo := adminrepo.New(store, prefix)

	if err := vectorRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}

	// Generated quizzes and mock tests live in memory until submitted.
	artifactTTL := time.Duration(cfg.Artifact.TTLMinutes) * time.Minute
	quizArtifacts := artifact.New[domain.Quiz](artifactTTL)
	defer quizArtifacts.Close()
	testArtifacts := artifact.New[domain.MockTest](artifactTTL)
	defer testArtifacts.Close()

	// Use case services
	gen := genai.New(chatModel, logger)
	retrievalSvc := retrievaluc.New(embedder, vectorRepo)
	evaluateSvc := evaluateuc.New(gen, logger)

	notebookSvc := notebookuc.New(notebookRepo, documentRepo, vectorRepo, blobs, logger)
	documentSvc := documentuc.New(notebookRepo, documentRepo, vectorRepo, blobs, embedder, documentuc.Config{
		ChunkSize:    cfg.Ingest.ChunkSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
	}, logger)
	qaSvc := qauc.New(retrievalSvc, chatModel, chatRepo, logger)
	quizSvc := quizuc.New(documentRepo, retrievalSvc, gen, chatModel, quizArtifacts, logger)
	mocktestSvc := mocktestuc.New(documentRepo, retrievalSvc, gen, evaluateSvc, chatModel, testArtifacts, logger)
	noteSvc := noteuc.New(noteRepo, retrievalSvc, chatModel, logger)
	annotationSvc := annotationuc.New(annotationRepo, chatModel, logger)
	interviewSvc := interviewuc.New(interviewRepo, chatModel, evaluateSvc, logger)
	cardSvc := carduc.New(documentRepo, documentSvc, gen, cardRepo, logger)
	adminSvc := adminuc.New(adminRepo, blobs, []adminuc.Flusher{quizArtifacts, testArtifacts}, logger)
	healthSvc := healthuc.New(store, embedder, chatModel)

	server := chiTransport.NewServer(
		notebookSvc, documentSvc, qaSvc, quizSvc, mocktestSvc,
		noteSvc, annotationSvc, interviewSvc, cardSvc, adminSvc,
		healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newBlobStore picks the file storage driver from config.
func newBlobStore(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch cfg.Driver {
	case "s3":
		return blob.NewS3(ctx, blob.S3Config{
			Endpoint:  cfg.Endpoint,
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
		})
	default:
		return blob.NewLocal(cfg.Dir)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
