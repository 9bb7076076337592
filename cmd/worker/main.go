package main

import (
	"context"
	"log"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/internal/activities"
	"github.com/coralkit/gitclone-agent/internal/config"
	"github.com/coralkit/gitclone-agent/internal/github"
	"github.com/coralkit/gitclone-agent/internal/gitops"
	workflows "github.com/coralkit/gitclone-agent/internal/temporal/workflows"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration from environment
	cfg, err := config.Load(context.Background())
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Create Temporal client
	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		logger.Fatal("failed to create temporal client", zap.Error(err))
	}
	defer c.Close()

	// Create git and GitHub clients
	gitClient := gitops.NewClient(cfg.WorkspaceDir, cfg.GitHubToken, cfg.GitTimeout, logger)
	githubClient := github.NewClient(cfg.GitHubToken, logger)

	// Initialize activities
	checkoutActivities := activities.NewCheckoutActivities(gitClient, githubClient, logger)
	activities.SetCheckoutActivities(checkoutActivities)

	// Create worker
	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	// Register workflow
	w.RegisterWorkflow(workflows.CheckoutWorkflow)

	// Register activities
	w.RegisterActivity(activities.ValidatePullRequestActivity)
	w.RegisterActivity(activities.CheckoutPullRequestActivity)

	// Start worker
	logger.Info("starting worker",
		zap.String("task_queue", cfg.TaskQueue),
		zap.String("namespace", cfg.TemporalNamespace),
		zap.String("workspace", cfg.WorkspaceDir),
	)

	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}

	logger.Info("worker stopped")
}
