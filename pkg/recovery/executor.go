package recovery

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
)

// Callback attempts to recover from a failure under the given strategy.
// It returns true when recovery succeeded (e.g. a fallback locale loaded)
// and an error describing why an individual attempt failed.
type Callback func(ctx context.Context, s Strategy) (bool, error)

// Executor resolves a strategy for each raised error and runs it. Every
// execution, recovered or not, is recorded in the tracker so the recovery
// success rate stays meaningful.
type Executor struct {
	policy  *Policy
	tracker *i18nerr.Tracker
	logger  *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the executor's logger. A discard logger is used when the
// option is absent or nil is passed.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an Executor bound to the given policy and tracker.
func NewExecutor(policy *Policy, tracker *i18nerr.Tracker, opts ...ExecutorOption) *Executor {
	e := &Executor{
		policy:  policy,
		tracker: tracker,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute records err, resolves its strategy, and runs exactly one of the
// four actions. The returned bool tells the caller whether to proceed as
// recovered (true) or surface the failure (false).
func (e *Executor) Execute(ctx context.Context, err error, fn Callback) bool {
	e.tracker.Track(err)

	strategy := e.policy.For(err)
	e.logger.DebugContext(ctx, "executing recovery",
		"category", i18nerr.CategoryOf(err),
		"action", strategy.Action,
	)

	var recovered bool
	switch strategy.Action {
	case ActionRetry:
		recovered = e.retry(ctx, strategy, fn)
	case ActionFallback:
		recovered = e.runOnce(ctx, strategy, fn)
	case ActionSkip:
		recovered = true
	case ActionAbort:
		recovered = false
	}

	e.tracker.TrackRecovery(recovered)
	if !recovered {
		e.logger.WarnContext(ctx, "recovery failed",
			"category", i18nerr.CategoryOf(err),
			"action", strategy.Action,
			"error", err,
		)
	}
	return recovered
}

// retry invokes fn up to MaxAttempts times, sleeping Delay between
// attempts. The sleep is context-aware so a cancelled caller is not held
// hostage by the backoff.
func (e *Executor) retry(ctx context.Context, s Strategy, fn Callback) bool {
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		ok, attemptErr := fn(ctx, s)
		if ok {
			return true
		}
		if attemptErr != nil {
			e.logger.DebugContext(ctx, "recovery attempt failed",
				"attempt", attempt,
				"max_attempts", s.MaxAttempts,
				"error", attemptErr,
			)
		}

		if attempt == s.MaxAttempts {
			break
		}
		if !sleep(ctx, s.Delay) {
			return false
		}
	}
	return false
}

func (e *Executor) runOnce(ctx context.Context, s Strategy, fn Callback) bool {
	ok, attemptErr := fn(ctx, s)
	if attemptErr != nil {
		e.logger.DebugContext(ctx, "fallback recovery failed", "locale", s.Locale, "error", attemptErr)
	}
	return ok
}
