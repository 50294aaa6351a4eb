package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/devsecquest/internal/store"
	"github.com/abhisek/devsecquest/internal/validation"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Inspect and create challenge records",
}

var challengesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List challenges, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		challenges, err := s.ChallengeRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list challenges: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(challenges) == 0 {
			fmt.Fprintln(out, "No challenges found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-28s  %-12s  %-9s  %-6s  %s\n",
			"ID", "Name", "Difficulty", "Status", "Points", "Started")
		fmt.Fprintln(out, strings.Repeat("─", 112))
		for _, c := range challenges {
			fmt.Fprintf(out, "%-36s  %-28s  %-12s  %-9s  %-6d  %s\n",
				c.ID,
				truncate(c.Name, 28),
				c.Difficulty,
				c.Status,
				c.Points,
				c.StartTime.Local().Format("2006-01-02 15:04:05"),
			)
		}
		return nil
	},
}

var challengesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a challenge record (defaults to the CI/CD challenge)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := validation.CICDChallenge()
		if v, _ := cmd.Flags().GetString("name"); v != "" {
			fields.Name = v
		}
		if v, _ := cmd.Flags().GetString("description"); v != "" {
			fields.Description = v
		}
		if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
			fields.Difficulty = store.Difficulty(v)
		}
		if cmd.Flags().Changed("points") {
			points, _ := cmd.Flags().GetInt("points")
			fields.Points = &points
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.ChallengeRepo().Create(cmd.Context(), fields)
		if err != nil {
			return fmt.Errorf("create challenge: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", c.Name, c.ID)
		return nil
	},
}

func init() {
	challengesCreateCmd.Flags().String("name", "", "Challenge name")
	challengesCreateCmd.Flags().String("description", "", "Challenge description")
	challengesCreateCmd.Flags().String("difficulty", "", "beginner, intermediate or advanced")
	challengesCreateCmd.Flags().Int("points", 0, "Points awarded on completion")

	challengesCmd.AddCommand(challengesListCmd)
	challengesCmd.AddCommand(challengesCreateCmd)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
