package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5555/sse", cfg.CoralSSEURL)
	assert.Equal(t, "gitclone_agent", cfg.CoralAgentID)
	assert.Equal(t, "gpt-4.1", cfg.OpenAIModel)
	assert.Equal(t, "/tmp/gitclone-workspace", cfg.WorkspaceDir)
	assert.Equal(t, "checkout-queue", cfg.TaskQueue)
	assert.Equal(t, 60*time.Second, cfg.MentionWaitTimeout)
	assert.Equal(t, 2*time.Second, cfg.MentionPause)
	assert.Equal(t, 5*time.Minute, cfg.GitTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CORAL_SSE_URL", "http://coral.internal:9000/sse")
	t.Setenv("CORAL_AGENT_ID", "clone-bot")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("MENTION_WAIT_TIMEOUT", "30s")
	t.Setenv("TASK_QUEUE", "alt-queue")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://coral.internal:9000/sse", cfg.CoralSSEURL)
	assert.Equal(t, "clone-bot", cfg.CoralAgentID)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.MentionWaitTimeout)
	assert.Equal(t, "alt-queue", cfg.TaskQueue)
}
