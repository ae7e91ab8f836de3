package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docusense/ai"
	"docusense/extraction"
	"docusense/infrastructure/http/server"
	"docusense/ingestion"
	"docusense/internal"
	"docusense/repositories"
	"docusense/sentiment"
	"docusense/services"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Docusense terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the server lifecycle so that deferred
// cleanups (Badger, Bluge) always execute before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (Badger + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		url := fmt.Sprintf("http://localhost:%d%s", internal.InspectPort, internal.InspectEndpoint)
		logger.Info("Debug Badger inspector available", "url", url)
		database.StartDebugServer(db, internal.InspectPort, internal.InspectEndpoint, internal.AnalysisMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Pipeline
	classifier, err := buildClassifier(config, logger)
	if err != nil {
		return exitConfig, err
	}
	generator := ai.NewOpenAIGenerator(logger, ai.OpenAIConfig{
		APIKey:  config.OpenAIAPIKey,
		BaseURL: config.OpenAIBaseURL,
		Model:   config.OpenAIModel,
		Timeout: config.GenerationTimeout,
	})
	ingester := ingestion.NewIngester(logger, config.Ingestion(), extraction.NewPDFExtractor(logger))
	summarizer := services.NewSummarizer(logger, generator, classifier, services.ClassificationPolicy(config.ClassificationPolicy))
	scorer := services.NewScorer(logger, generator)
	analyzerService := services.NewAnalyzerService(logger, ingester, summarizer, scorer)
	analysisRepository := repositories.NewAnalysisRepository(db, blugeWriter, logger, config.SearchLimit)

	// 4. HTTP transport
	analysisServer := server.NewAnalysisServer(logger, analyzerService, analysisRepository, config.MaxFileSize)
	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           server.NewRouter(logger, analysisServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 6. Graceful shutdown: in-flight analyses get SHUTDOWN_TIMEOUT to finish.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("http shutdown failed: %w", err)
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

func buildClassifier(config internal.Config, logger *slog.Logger) (sentiment.Classifier, error) {
	switch config.SentimentClassifier {
	case internal.ClassifierLength:
		return sentiment.LengthClassifier{}, nil
	default:
		classifier, err := sentiment.NewLexiconClassifier(logger)
		if err != nil {
			return nil, fmt.Errorf("building lexicon classifier: %w", err)
		}
		return classifier, nil
	}
}
