package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Persister decouples in-memory mutations from store writes: a mutation
// is applied first, then its persistence is enqueued. A failed write is
// retried and eventually dropped with a log line; the in-memory state
// is never rolled back (best-effort policy, last write wins at the
// store).
type Persister interface {
	Enqueue(name string, fn func(ctx context.Context) error)
}

type persistOp struct {
	name string
	fn   func(ctx context.Context) error
}

type asyncPersister struct {
	ops     chan persistOp
	logger  *slog.Logger
	limiter *rate.Limiter

	maxAttempts int
	baseBackoff time.Duration
}

// NewAsyncPersister builds the background persist pipeline. Run must be
// started in its own goroutine.
func NewAsyncPersister(logger *slog.Logger) *asyncPersister {
	return &asyncPersister{
		ops:         make(chan persistOp, 256),
		logger:      logger,
		limiter:     rate.NewLimiter(rate.Limit(20), 20),
		maxAttempts: 5,
		baseBackoff: 250 * time.Millisecond,
	}
}

func (p *asyncPersister) Enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case p.ops <- persistOp{name: name, fn: fn}:
	default:
		// Queue full: drop the oldest op in favor of the newest, the
		// last whole-snapshot write wins anyway.
		select {
		case <-p.ops:
		default:
		}
		p.ops <- persistOp{name: name, fn: fn}
		p.logger.Warn("persist queue full, dropped oldest write", slog.String("op", name))
	}
}

func (p *asyncPersister) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-p.ops:
			if err := p.limiter.Wait(ctx); err != nil {
				return
			}
			p.persist(ctx, op)
		}
	}
}

func (p *asyncPersister) persist(ctx context.Context, op persistOp) {
	backoff := p.baseBackoff
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := op.fn(opCtx)
		cancel()
		if err == nil {
			return
		}
		p.logger.Warn("persist attempt failed",
			slog.String("op", op.name),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		if attempt == p.maxAttempts {
			p.logger.Error("persist dropped after retries", slog.String("op", op.name), slog.Any("error", err))
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}
