package report

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/abhisek/devsecquest/internal/rules"
	"github.com/abhisek/devsecquest/internal/validation"
)

// Outcome writes a human-readable validation report for source. Styling is
// downsampled to what w supports, so non-terminal writers get plain text.
func Outcome(w io.Writer, source string, o validation.Outcome) error {
	if _, err := lipgloss.Fprintln(w, titleStyle.Render("Pipeline security check: "+source)); err != nil {
		return err
	}

	if o.Passed {
		_, err := lipgloss.Fprintf(w, "%s %s (+%d points)\n",
			passStyle.Render("✓ PASS"), validation.MessagePassed, o.PointsAwarded)
		return err
	}

	if _, err := lipgloss.Fprintf(w, "%s %s (%d)\n",
		failStyle.Render("✗ FAIL"), validation.MessageFailed, len(o.Findings)); err != nil {
		return err
	}
	for _, f := range o.Findings {
		if _, err := lipgloss.Fprintf(w, "  • %s %s\n", f.Message, ruleStyle.Render("["+f.RuleID+"]")); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes the submitter-facing response for o as indented JSON.
func JSON(w io.Writer, o validation.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o.Response())
}

// Rules writes the registered rules as a table in evaluation order.
func Rules(w io.Writer, rs []rules.Rule) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "Message")
	for i, r := range rs {
		if err := table.Append([]string{fmt.Sprint(i + 1), r.ID, r.Message}); err != nil {
			return err
		}
	}
	return table.Render()
}
