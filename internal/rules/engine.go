package rules

import (
	"fmt"
	"sync"
)

// Engine evaluates an ordered set of rules against a document.
// Registration is expected to happen at startup; Evaluate is safe for
// concurrent use.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule
	ids   map[string]struct{}
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{ids: make(map[string]struct{})}
}

// Register appends r to the end of the evaluation order.
func (e *Engine) Register(r Rule) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty ID", ErrInvalidRule)
	}
	if r.Predicate == nil {
		return fmt.Errorf("%w: %q has no predicate", ErrInvalidRule, r.ID)
	}
	if err := probe(r); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.ids[r.ID]; ok {
		return &DuplicateRuleError{ID: r.ID}
	}
	e.ids[r.ID] = struct{}{}
	e.rules = append(e.rules, r)
	return nil
}

// MustRegister is like Register but panics on error.
func (e *Engine) MustRegister(rs ...Rule) {
	for _, r := range rs {
		if err := e.Register(r); err != nil {
			panic(err)
		}
	}
}

// Evaluate runs every registered rule against doc in registration order and
// returns a finding for each match. All rules run; the result is never nil.
func (e *Engine) Evaluate(doc string) []Finding {
	e.mu.RLock()
	defer e.mu.RUnlock()

	findings := make([]Finding, 0, len(e.rules))
	for _, r := range e.rules {
		if r.Predicate(doc) {
			findings = append(findings, Finding{RuleID: r.ID, Message: r.Message})
		}
	}
	return findings
}

// Rules returns a copy of the registered rules in evaluation order.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Len returns the number of registered rules.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// probe runs the predicate on the empty document so a panicking rule is
// rejected at registration instead of during a request.
func probe(r Rule) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %q panicked on empty input: %v", ErrInvalidRule, r.ID, p)
		}
	}()
	r.Predicate("")
	return nil
}
