package sync

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/speedarch/speedarch/pkg/types"
)

// retryStep runs one state-machine step under the retry policy: transient
// failures cool down for cfg.Cooldown and loop back to the same step;
// anything else is permanent. MaxAttempts zero leaves retries unbounded,
// which suits a manually operated tool. Every retry logs its cause and the
// game being processed so an operator can resume manually.
func retryStep[T any](o *Orchestrator, ctx context.Context, step, gameID string, op func() (T, error)) (T, error) {
	operation := func() (T, error) {
		v, err := op()
		if err != nil && !types.IsTransient(err) {
			var zero T
			return zero, backoff.Permanent(err)
		}
		return v, err
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(o.cfg.Cooldown)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			o.log.Warn("transient failure, cooling down",
				zap.String("step", step),
				zap.String("game", gameID),
				zap.Duration("wait", wait),
				zap.Error(err))
		}),
	}
	if o.cfg.MaxAttempts > 0 {
		opts = append(opts, backoff.WithMaxTries(uint(o.cfg.MaxAttempts)))
	}

	return backoff.Retry(ctx, operation, opts...)
}
