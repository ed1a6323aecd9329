package recovery

import "time"

// Action selects how a failed operation should be recovered.
type Action string

const (
	// ActionRetry re-invokes the recovery callback up to MaxAttempts times,
	// sleeping Delay between attempts.
	ActionRetry Action = "retry"
	// ActionFallback invokes the callback once, pointing it at Locale.
	ActionFallback Action = "fallback"
	// ActionSkip reports success without invoking the callback; the caller
	// proceeds as if recovery succeeded.
	ActionSkip Action = "skip"
	// ActionAbort reports failure without invoking the callback; the caller
	// must surface the error.
	ActionAbort Action = "abort"
)

// Strategy is a tagged union over the four recovery actions. Only the
// fields relevant to the action are populated.
type Strategy struct {
	Action      Action
	MaxAttempts int
	Delay       time.Duration
	Locale      string
}

// Retry builds a retry strategy with the given attempt bound and inter-try
// delay. Attempt counts below one are clamped to one.
func Retry(attempts int, delay time.Duration) Strategy {
	if attempts < 1 {
		attempts = 1
	}
	return Strategy{Action: ActionRetry, MaxAttempts: attempts, Delay: delay}
}

// Fallback builds a fallback strategy targeting the given locale.
func Fallback(locale string) Strategy {
	return Strategy{Action: ActionFallback, Locale: locale}
}

// Skip builds a skip strategy.
func Skip() Strategy {
	return Strategy{Action: ActionSkip}
}

// Abort builds an abort strategy.
func Abort() Strategy {
	return Strategy{Action: ActionAbort}
}
