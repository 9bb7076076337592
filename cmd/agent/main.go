package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/internal/agent"
	"github.com/coralkit/gitclone-agent/internal/api/rest"
	"github.com/coralkit/gitclone-agent/internal/config"
	"github.com/coralkit/gitclone-agent/internal/coral"
	"github.com/coralkit/gitclone-agent/internal/temporal"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration from environment
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Create Temporal client
	temporalClient, err := temporal.NewClient(cfg.TemporalAddress, cfg.TemporalNamespace, cfg.TaskQueue, logger)
	if err != nil {
		logger.Fatal("failed to create temporal client", zap.Error(err))
	}
	defer temporalClient.Close()

	// Create Coral client and connect
	coralClient, err := coral.NewClient(cfg.CoralSSEURL, cfg.CoralAgentID, cfg.AgentDescription, logger)
	if err != nil {
		logger.Fatal("failed to create coral client", zap.Error(err))
	}
	if err := coralClient.Connect(ctx); err != nil {
		logger.Fatal("failed to connect to coral server", zap.Error(err))
	}
	defer coralClient.Close()

	// Create agent runner
	llm := openai.NewClient(cfg.OpenAIAPIKey)
	runner := agent.NewRunner(llm, cfg.OpenAIModel, cfg.CoralAgentID, coralClient, temporalClient, logger)

	// Create mention listener
	listener := coral.NewListener(coralClient, cfg.MentionWaitTimeout, cfg.MentionPause, cfg.ErrorPause, logger)

	// Setup REST API
	restHandler := rest.NewHandler(temporalClient, logger)
	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		restHandler.RegisterRoutes(r)
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	restAddr := fmt.Sprintf(":%s", cfg.RESTPort)
	restServer := &http.Server{
		Addr:    restAddr,
		Handler: router,
	}

	go func() {
		logger.Info("starting REST API server", zap.String("address", restAddr))
		if err := restServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start REST server", zap.Error(err))
		}
	}()

	// Start mention loop
	mentions := make(chan string, 10)
	go listener.Start(ctx, mentions)

	go func() {
		if err := runner.Start(ctx, mentions); err != nil && err != context.Canceled {
			logger.Error("agent runner failed", zap.Error(err))
		}
	}()

	logger.Info("agent started",
		zap.String("agent_id", cfg.CoralAgentID),
		zap.String("model", cfg.OpenAIModel),
	)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	// Shutdown mention loop
	cancel()

	// Shutdown REST server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	restServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
