package i18nerr

import (
	"sync"
	"time"
)

// DefaultMaxLog bounds the tracker's FIFO log when no size is configured.
const DefaultMaxLog = 100

// Record is one tracked error. Records are immutable once appended.
type Record struct {
	ID       string
	Category Category
	Message  string
	Context  Context
	Time     time.Time
}

// Stats is a point-in-time snapshot of tracker state. The maps are copies
// and safe to retain.
type Stats struct {
	Total               int
	ByCategory          map[Category]int
	ByLocale            map[string]int
	RecoveryAttempts    int
	RecoverySuccesses   int
	RecoverySuccessRate float64
	Recent              []Record
}

// Tracker aggregates raised errors into a bounded FIFO log and counters.
// All methods are safe for concurrent use.
type Tracker struct {
	mu                sync.Mutex
	maxLog            int
	log               []Record
	byCategory        map[Category]int
	byLocale          map[string]int
	recoveryAttempts  int
	recoverySuccesses int
}

// NewTracker creates a Tracker keeping at most maxLog records. Non-positive
// sizes fall back to DefaultMaxLog.
func NewTracker(maxLog int) *Tracker {
	if maxLog <= 0 {
		maxLog = DefaultMaxLog
	}
	return &Tracker{
		maxLog:     maxLog,
		byCategory: make(map[Category]int),
		byLocale:   make(map[string]int),
	}
}

// Track appends err to the log, dropping the oldest record once the bound is
// exceeded, and bumps the per-category and per-locale counters. Nil errors
// are ignored.
func (t *Tracker) Track(err error) {
	if err == nil {
		return
	}

	cat := CategoryOf(err)
	rec := Record{
		Category: cat,
		Message:  err.Error(),
		Time:     time.Now(),
	}
	if ctx, ok := ContextOf(err); ok {
		rec.Context = ctx
	}
	if ider, ok := err.(interface{ ErrorID() string }); ok {
		rec.ID = ider.ErrorID()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.log = append(t.log, rec)
	if len(t.log) > t.maxLog {
		t.log = t.log[len(t.log)-t.maxLog:]
	}
	t.byCategory[cat]++
	if rec.Context.Locale != "" {
		t.byLocale[rec.Context.Locale]++
	}
}

// TrackRecovery records one recovery execution outcome. Every execution,
// successful or not, counts as an attempt.
func (t *Tracker) TrackRecovery(success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.recoveryAttempts++
	if success {
		t.recoverySuccesses++
	}
}

// Stats returns a snapshot of all counters and the current log contents.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	byCat := make(map[Category]int, len(t.byCategory))
	for k, v := range t.byCategory {
		byCat[k] = v
	}
	byLoc := make(map[string]int, len(t.byLocale))
	for k, v := range t.byLocale {
		byLoc[k] = v
	}
	recent := make([]Record, len(t.log))
	copy(recent, t.log)

	total := 0
	for _, v := range byCat {
		total += v
	}

	rate := 0.0
	if t.recoveryAttempts > 0 {
		rate = float64(t.recoverySuccesses) / float64(t.recoveryAttempts)
	}

	return Stats{
		Total:               total,
		ByCategory:          byCat,
		ByLocale:            byLoc,
		RecoveryAttempts:    t.recoveryAttempts,
		RecoverySuccesses:   t.recoverySuccesses,
		RecoverySuccessRate: rate,
		Recent:              recent,
	}
}

// Clear atomically resets the log and every counter.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.log = nil
	t.byCategory = make(map[Category]int)
	t.byLocale = make(map[string]int)
	t.recoveryAttempts = 0
	t.recoverySuccesses = 0
}
