package coral

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Listener runs the mention loop against the Coral Server and forwards
// mention payloads to the agent.
type Listener struct {
	client      *Client
	logger      *zap.Logger
	waitTimeout time.Duration
	pause       time.Duration
	errorPause  time.Duration
}

// NewListener creates a new mention listener.
func NewListener(client *Client, waitTimeout, pause, errorPause time.Duration, logger *zap.Logger) *Listener {
	return &Listener{
		client:      client,
		logger:      logger,
		waitTimeout: waitTimeout,
		pause:       pause,
		errorPause:  errorPause,
	}
}

// Start runs the listen loop until the context is cancelled. Mention
// payloads are delivered on mentions in arrival order.
func (l *Listener) Start(ctx context.Context, mentions chan<- string) {
	for {
		if ctx.Err() != nil {
			l.logger.Info("stopping coral listener")
			return
		}

		payload, err := l.client.WaitForMentions(ctx, l.waitTimeout)
		if err != nil {
			l.logger.Error("failed to wait for mentions", zap.Error(err))
			if !sleep(ctx, l.errorPause) {
				return
			}
			continue
		}

		if payload != "" {
			select {
			case mentions <- payload:
				l.logger.Info("received mention", zap.Int("payload_bytes", len(payload)))
			case <-ctx.Done():
				return
			}
		}

		if !sleep(ctx, l.pause) {
			return
		}
	}
}

// sleep pauses for d, returning false if the context was cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
