package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ResilientOptions configures Resilient
type ResilientOptions struct {
	Timeout         time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration
	BreakerFailures uint32
	BreakerOpenFor  time.Duration
}

// Resilient bounds every call with a timeout, retries failures with
// exponential backoff and stops calling a failing service through a circuit breaker.
type Resilient struct {
	next    Synthesizer
	opts    ResilientOptions
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewResilient wraps next
func NewResilient(next Synthesizer, opts ResilientOptions, logger *zap.Logger) *Resilient {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}

	r := &Resilient{
		next:   next,
		opts:   opts,
		logger: logger,
		sleep:  sleepCtx,
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tts",
		MaxRequests: 1,
		Timeout:     opts.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up says nothing about the service health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("TTS circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return r
}

// Synthesize implements Synthesizer
func (r *Resilient) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	delay := r.opts.RetryDelay
	var lastErr error

	attempt := 1
	for ; attempt <= r.opts.MaxAttempts; attempt++ {
		data, err := r.call(ctx, text, lang)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !retryable(ctx, err) || attempt == r.opts.MaxAttempts {
			break
		}

		r.logger.Warn("TTS call failed, retrying",
			zap.String("lang", lang),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := r.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}

	return nil, fmt.Errorf("tts failed after %d attempt(s): %w", attempt, lastErr)
}

// State returns the circuit breaker state
func (r *Resilient) State() gobreaker.State {
	return r.breaker.State()
}

func (r *Resilient) call(ctx context.Context, text, lang string) ([]byte, error) {
	res, err := r.breaker.Execute(func() (interface{}, error) {
		callCtx := ctx
		if r.opts.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
			defer cancel()
		}
		return r.next.Synthesize(callCtx, text, lang)
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
