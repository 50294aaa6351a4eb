package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/devsecquest/internal/report"
	"github.com/abhisek/devsecquest/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the security rules in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.Rules(cmd.OutOrStdout(), rules.Default().Rules())
	},
}
