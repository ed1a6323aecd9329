package i18nerr

import "time"

// Context describes where an error was raised. It is populated once at
// construction and never mutated afterwards, so tracked errors form an
// append-only audit trail.
type Context struct {
	Locale    string
	Key       string
	Section   string
	Module    string
	Operation string
	Timestamp time.Time
}

// contextCarrier is implemented by every typed error in this package.
type contextCarrier interface {
	ErrorContext() Context
}

// ContextOf extracts the Context from a typed translation error.
// Returns false for errors raised outside this taxonomy.
func ContextOf(err error) (Context, bool) {
	if c, ok := err.(contextCarrier); ok {
		return c.ErrorContext(), true
	}
	return Context{}, false
}
