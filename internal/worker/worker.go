package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quizhive/backend/internal/badges"
	"github.com/quizhive/backend/pkg/queue"
)

// BadgeProcessor processes badge recompute jobs from the Redis queue.
type BadgeProcessor struct {
	badges *badges.Service
	queue  *queue.Queue
	logger *zap.Logger
}

// NewBadgeProcessor creates a badge recompute processor.
func NewBadgeProcessor(badgeService *badges.Service, q *queue.Queue, logger *zap.Logger) *BadgeProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BadgeProcessor{badges: badgeService, queue: q, logger: logger}
}

// Process executes one badge recompute job.
func (p *BadgeProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeBadgeRecompute {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.BadgeRecomputePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	earned, err := p.badges.Recompute(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("recompute badges: %w", err)
	}

	p.logger.Info("badges recomputed",
		zap.String("user_id", payload.UserID.String()),
		zap.Int("badge_count", len(earned)))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *BadgeProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("badge worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
