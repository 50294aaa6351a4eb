package rules

import "strings"

// Default rule IDs.
const (
	ExposedCredentials   = "exposed-credentials"
	MissingSecurityScan  = "missing-security-scan"
	MissingAccessControl = "missing-access-control"
)

// DefaultRules returns the built-in checks in evaluation order.
// Matching is literal and case-sensitive: "passwordless" counts as "password".
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:        ExposedCredentials,
			Predicate: ContainsAny("password", "secret"),
			Message:   "Exposed credentials found in pipeline configuration.",
		},
		{
			ID:        MissingSecurityScan,
			Predicate: ContainsNone("security-scan", "vulnerability"),
			Message:   "Missing security scanning in pipeline.",
		},
		{
			ID:        MissingAccessControl,
			Predicate: ContainsNone("authorization", "permissions"),
			Message:   "Missing proper access controls.",
		},
	}
}

// Default returns a new engine loaded with DefaultRules.
func Default() *Engine {
	e := NewEngine()
	e.MustRegister(DefaultRules()...)
	return e
}

// ContainsAny matches documents containing at least one of words.
func ContainsAny(words ...string) Predicate {
	return func(doc string) bool {
		for _, w := range words {
			if strings.Contains(doc, w) {
				return true
			}
		}
		return false
	}
}

// ContainsNone matches documents containing none of words.
func ContainsNone(words ...string) Predicate {
	contains := ContainsAny(words...)
	return func(doc string) bool {
		return !contains(doc)
	}
}
