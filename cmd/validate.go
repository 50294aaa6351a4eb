package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/devsecquest/internal/report"
	"github.com/abhisek/devsecquest/internal/rules"
	"github.com/abhisek/devsecquest/internal/validation"
)

// ErrIssuesFound is returned by validate when the configuration fails checks.
var ErrIssuesFound = errors.New("security issues found")

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Check a pipeline configuration locally (no database)",
	Long: `Run the security checks against a pipeline configuration file, or stdin
when the argument is "-" or omitted. Exits with status 1 when issues are found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("json", false, "Print the API response shape as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	doc, name, err := readDocument(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	svc := validation.NewService(rules.Default(), nil)
	outcome, err := svc.Evaluate(&doc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		err = report.JSON(out, outcome)
	} else {
		err = report.Outcome(out, name, outcome)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !outcome.Passed {
		return ErrIssuesFound
	}
	return nil
}

func readDocument(stdin io.Reader, source string) (doc, name string, err error) {
	if source == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "stdin", nil
	}
	b, err := os.ReadFile(source)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", source, err)
	}
	return string(b), source, nil
}
