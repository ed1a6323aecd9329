package recovery

import (
	"sync"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
)

// Policy holds the mutable category-to-strategy table. The mapping is
// chosen per error category, never per instance, and may be overridden at
// runtime. All methods are safe for concurrent use.
type Policy struct {
	mu         sync.RWMutex
	strategies map[i18nerr.Category]Strategy
	fallback   Strategy
}

// NewPolicy creates a Policy with the default table. fallbackLocale is the
// target of the fallback strategies assigned to load failures; categories
// without an explicit entry resolve to skip.
func NewPolicy(fallbackLocale string) *Policy {
	return &Policy{
		strategies: map[i18nerr.Category]Strategy{
			i18nerr.CategoryNetwork:         Retry(3, time.Second),
			i18nerr.CategoryTranslationLoad: Fallback(fallbackLocale),
			i18nerr.CategorySectionLoad:     Fallback(fallbackLocale),
			i18nerr.CategoryModuleLoad:      Retry(2, 500*time.Millisecond),
			i18nerr.CategoryTranslationKey:  Skip(),
			i18nerr.CategoryCache:           Skip(),
			i18nerr.CategoryConfiguration:   Abort(),
		},
		fallback: Skip(),
	}
}

// For returns the strategy assigned to the category of err.
func (p *Policy) For(err error) Strategy {
	return p.ForCategory(i18nerr.CategoryOf(err))
}

// ForCategory returns the strategy assigned to cat, or the default skip
// strategy when no entry exists.
func (p *Policy) ForCategory(cat i18nerr.Category) Strategy {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if s, ok := p.strategies[cat]; ok {
		return s
	}
	return p.fallback
}

// Set overrides the strategy for a category. Takes effect for the next
// execution; in-flight executions keep the strategy they resolved.
func (p *Policy) Set(cat i18nerr.Category, s Strategy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.strategies[cat] = s
}
