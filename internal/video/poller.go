package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"prompt-architect-server/internal/models"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultMaxPollDuration = 10 * time.Minute
)

// Poller drives the fixed-interval poll loop for one submitted operation.
// It stops on the first terminal result, on an invalid credential, when the
// maximum duration elapses or when the context is cancelled. Transient poll
// errors are retried until the deadline.
type Poller struct {
	client      GenerationClient
	interval    time.Duration
	maxDuration time.Duration
	logger      *zap.Logger
}

func NewPoller(client GenerationClient, interval, maxDuration time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if maxDuration <= 0 {
		maxDuration = defaultMaxPollDuration
	}
	return &Poller{
		client:      client,
		interval:    interval,
		maxDuration: maxDuration,
		logger:      logger.Named("video-poller"),
	}
}

// Wait polls op until it reaches a terminal state.
func (p *Poller) Wait(ctx context.Context, op Operation) (Operation, error) {
	if op.Done {
		return p.finish(op)
	}

	ctx, cancel := context.WithTimeout(ctx, p.maxDuration)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return op, fmt.Errorf("%w: polling timed out after %s", models.ErrVideoGenerationFailed, p.maxDuration)
			}
			return op, ctx.Err()
		case <-ticker.C:
			updated, err := p.client.Poll(ctx, op)
			if err != nil {
				if errors.Is(err, models.ErrVideoCredentialInvalid) {
					p.logger.Warn("stopping poll on credential error", zap.String("operation", op.ID), zap.Error(err))
					return op, err
				}
				p.logger.Debug("transient poll error", zap.String("operation", op.ID), zap.Error(err))
				continue
			}
			op = updated
			if op.Done {
				return p.finish(op)
			}
		}
	}
}

func (p *Poller) finish(op Operation) (Operation, error) {
	if op.Error != "" {
		return op, fmt.Errorf("%w: %s", models.ErrVideoGenerationFailed, op.Error)
	}
	p.logger.Info("video operation finished", zap.String("operation", op.ID))
	return op, nil
}
