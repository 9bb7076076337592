package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all environment-derived settings for the agent and worker.
type Config struct {
	CoralSSEURL      string `env:"CORAL_SSE_URL, default=http://localhost:5555/sse"`
	CoralAgentID     string `env:"CORAL_AGENT_ID, default=gitclone_agent"`
	AgentDescription string `env:"CORAL_AGENT_DESCRIPTION, default=Responsible for cloning GitHub repositories and checking out branches associated with specific pull requests."`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL, default=gpt-4.1"`

	GitHubToken  string        `env:"GITHUB_TOKEN"`
	WorkspaceDir string        `env:"WORKSPACE_DIR, default=/tmp/gitclone-workspace"`
	GitTimeout   time.Duration `env:"GIT_TIMEOUT, default=5m"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS, default=localhost:7233"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE, default=default"`
	TaskQueue         string `env:"TASK_QUEUE, default=checkout-queue"`

	RESTPort string `env:"REST_PORT, default=8080"`

	MentionWaitTimeout time.Duration `env:"MENTION_WAIT_TIMEOUT, default=60s"`
	MentionPause       time.Duration `env:"MENTION_PAUSE, default=2s"`
	ErrorPause         time.Duration `env:"ERROR_PAUSE, default=5s"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
