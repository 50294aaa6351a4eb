package rules

import (
	"errors"
	"fmt"
)

// Predicate reports whether a document exhibits the weakness a rule looks for.
// Predicates must be pure and must not panic for any input, including "".
type Predicate func(doc string) bool

// Rule is a named security check. Rules are immutable once registered.
type Rule struct {
	ID        string
	Predicate Predicate
	Message   string
}

// Finding is emitted for every rule whose predicate matched a document.
type Finding struct {
	RuleID  string `json:"ruleId"`
	Message string `json:"message"`
}

// ErrInvalidRule indicates a rule that cannot be registered: empty ID,
// nil predicate, or a predicate that panics.
var ErrInvalidRule = errors.New("invalid rule")

// DuplicateRuleError is returned when a rule ID is registered twice.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q already registered", e.ID)
}
