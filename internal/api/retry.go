package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rickgao/disclosure-data/internal/auth"
	"github.com/rickgao/disclosure-data/internal/model"
)

// RetryFetcher wraps a Fetcher with exponential backoff. It belongs to the
// caller: Client itself never retries.
type RetryFetcher struct {
	next       Fetcher
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
}

// NewRetryFetcher retries next up to maxRetries times after the first attempt.
func NewRetryFetcher(next Fetcher, maxRetries int, backoff time.Duration, logger *slog.Logger) *RetryFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &RetryFetcher{
		next:       next,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
	}
}

// Fetch performs q with exponential backoff retry.
func (r *RetryFetcher) Fetch(ctx context.Context, q model.Query, cred auth.Credential) (model.RawResult, error) {
	var lastErr error
	backoff := r.backoff

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			r.logger.Debug("retrying fetch",
				"attempt", attempt,
				"backoff", jitter,
				"dataset", q.Dataset,
			)

			select {
			case <-ctx.Done():
				return model.RawResult{}, &TransportError{Service: q.Service, Op: "retry wait", Err: ctx.Err()}
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		raw, err := r.next.Fetch(ctx, q, cred)
		if err == nil {
			return raw, nil
		}

		lastErr = err
		if !Retryable(err) {
			return model.RawResult{}, err
		}
	}

	return model.RawResult{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// Retryable reports whether err is worth another attempt: 5xx and 429
// responses, and transport failures other than cancellation.
func Retryable(err error) bool {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.IsRetryable()
	}

	var tErr *TransportError
	if errors.As(err, &tErr) {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	return false
}
