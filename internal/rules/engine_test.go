package rules

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func always(string) bool { return true }
func never(string) bool  { return false }

func TestRegister_PreservesOrder(t *testing.T) {
	e := NewEngine()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, e.Register(Rule{ID: id, Predicate: always, Message: "msg " + id}))
	}

	findings := e.Evaluate("anything")
	require.Len(t, findings, 3)
	assert.Equal(t, "c", findings[0].RuleID)
	assert.Equal(t, "a", findings[1].RuleID)
	assert.Equal(t, "b", findings[2].RuleID)
	assert.Equal(t, "msg a", findings[1].Message)
}

func TestRegister_Duplicate(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Register(Rule{ID: "dup", Predicate: always}))

	err := e.Register(Rule{ID: "dup", Predicate: never})
	var dup *DuplicateRuleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "dup", dup.ID)
	assert.Equal(t, `rule "dup" already registered`, err.Error())
	assert.Equal(t, 1, e.Len(), "duplicate must not be added")
}

func TestRegister_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"empty id", Rule{Predicate: always}},
		{"nil predicate", Rule{ID: "x"}},
		{"panicking predicate", Rule{ID: "boom", Predicate: func(doc string) bool { return doc[0] == 'x' }}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			err := e.Register(tt.rule)
			assert.True(t, errors.Is(err, ErrInvalidRule), "got %v", err)
			assert.Zero(t, e.Len())
		})
	}
}

func TestMustRegister_PanicsOnDuplicate(t *testing.T) {
	e := NewEngine()
	e.MustRegister(Rule{ID: "one", Predicate: always})
	assert.Panics(t, func() {
		e.MustRegister(Rule{ID: "one", Predicate: always})
	})
}

func TestEvaluate_NoShortCircuit(t *testing.T) {
	var calls []string
	track := func(id string, result bool) Predicate {
		return func(doc string) bool {
			if doc != "" {
				calls = append(calls, id)
			}
			return result
		}
	}

	e := NewEngine()
	e.MustRegister(
		Rule{ID: "first", Predicate: track("first", true)},
		Rule{ID: "second", Predicate: track("second", false)},
		Rule{ID: "third", Predicate: track("third", true)},
	)

	findings := e.Evaluate("doc")
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	require.Len(t, findings, 2)
	assert.Equal(t, "first", findings[0].RuleID)
	assert.Equal(t, "third", findings[1].RuleID)
}

func TestEvaluate_EmptyEngine(t *testing.T) {
	findings := NewEngine().Evaluate("password")
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}

func TestRules_ReturnsCopy(t *testing.T) {
	e := Default()
	rs := e.Rules()
	rs[0] = Rule{ID: "tampered"}

	assert.Equal(t, ExposedCredentials, e.Rules()[0].ID)
}

func TestEvaluate_Concurrent(t *testing.T) {
	e := Default()
	want := e.Evaluate("stage { sh 'deploy.sh' }")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got := e.Evaluate("stage { sh 'deploy.sh' }")
			assert.Equal(t, want, got, fmt.Sprintf("goroutine %d", i))
		}(i)
	}
	wg.Wait()
}
