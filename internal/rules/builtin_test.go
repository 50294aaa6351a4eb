package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ruleIDs(findings []Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.RuleID
	}
	return ids
}

func messages(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

func TestDefaultRules_Order(t *testing.T) {
	rs := Default().Rules()
	want := []string{ExposedCredentials, MissingSecurityScan, MissingAccessControl}
	if len(rs) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rs))
	}
	for i, r := range rs {
		if r.ID != want[i] {
			t.Errorf("rule %d: expected %q, got %q", i, want[i], r.ID)
		}
	}
}

func TestDefaultRules_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "plain deploy stage",
			doc:  "stage { sh 'deploy.sh' }",
			want: []string{"Missing security scanning in pipeline.", "Missing proper access controls."},
		},
		{
			name: "secure pipeline",
			doc:  "pipeline { security-scan: true; authorization: required }",
			want: []string{},
		},
		{
			name: "exported password",
			doc:  "export DB_PASSWORD=secret123",
			want: []string{
				"Exposed credentials found in pipeline configuration.",
				"Missing security scanning in pipeline.",
				"Missing proper access controls.",
			},
		},
		{
			name: "empty document",
			doc:  "",
			want: []string{"Missing security scanning in pipeline.", "Missing proper access controls."},
		},
	}

	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messages(e.Evaluate(tt.doc)))
		})
	}
}

func TestExposedCredentials(t *testing.T) {
	tests := []struct {
		doc  string
		want bool
	}{
		{"password: hunter2", true},
		{"passwordless login", true},
		{"aws_secret_access_key", true},
		{"client-secret", true},
		{"PASSWORD=x", false},
		{"Secret", false},
		{"token: abc", false},
		{"", false},
	}

	e := Default()
	for _, tt := range tests {
		got := contains(ruleIDs(e.Evaluate(tt.doc)), ExposedCredentials)
		if got != tt.want {
			t.Errorf("doc %q: exposed-credentials = %v, want %v", tt.doc, got, tt.want)
		}
	}
}

func TestMissingSecurityScan(t *testing.T) {
	tests := []struct {
		doc  string
		want bool
	}{
		{"stage('security-scan') { }", false},
		{"run vulnerability check", false},
		{"security-scan and vulnerability", false},
		{"security scan", true},
		{"Vulnerability", true},
		{"", true},
	}

	e := Default()
	for _, tt := range tests {
		got := contains(ruleIDs(e.Evaluate(tt.doc)), MissingSecurityScan)
		if got != tt.want {
			t.Errorf("doc %q: missing-security-scan = %v, want %v", tt.doc, got, tt.want)
		}
	}
}

func TestMissingAccessControl(t *testing.T) {
	tests := []struct {
		doc  string
		want bool
	}{
		{"authorization: matrix", false},
		{"permissions: read-all", false},
		{"Authorization", true},
		{"permission", true},
		{"", true},
	}

	e := Default()
	for _, tt := range tests {
		got := contains(ruleIDs(e.Evaluate(tt.doc)), MissingAccessControl)
		if got != tt.want {
			t.Errorf("doc %q: missing-access-control = %v, want %v", tt.doc, got, tt.want)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := Default()
	doc := "password in a pipeline without permissions"
	assert.Equal(t, e.Evaluate(doc), e.Evaluate(doc))
}

func TestContainsNone(t *testing.T) {
	p := ContainsNone("a", "b")
	assert.True(t, p("xyz"))
	assert.False(t, p("xay"))
	assert.False(t, p("b"))
	assert.True(t, ContainsNone()("anything"))
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
