package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/assessgen/internal/planner"
	"github.com/abhisek/assessgen/internal/ui/report"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an assessment for a student profile",
	Example: `  assessgen generate --profile student.json --strategy REVIEW --budget 30
  assessgen generate --mastered Arithmetic --goal Fractions --strategy CHALLENGE --budget 20 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("strategy")
		strategy, err := planner.ParseStrategy(name)
		if err != nil {
			return err
		}
		budget, _ := cmd.Flags().GetInt("budget")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.assessmentService(nil)
		if err != nil {
			return err
		}

		res, err := svc.Generate(cmd.Context(), profile, planner.Request{
			MaxTotalTimeMinutes: budget,
			Strategy:            strategy,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, res)
		}
		fmt.Fprintln(out, report.Render(res, terminalWidth()))
		return nil
	},
}

// profileFromFlags reads --profile, or builds a profile from --student,
// --mastered and --goal when no file is given.
func profileFromFlags(cmd *cobra.Command) (planner.StudentProfile, error) {
	var profile planner.StudentProfile

	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return profile, fmt.Errorf("read profile: %w", err)
		}
		if err := json.Unmarshal(data, &profile); err != nil {
			return profile, fmt.Errorf("parse profile %s: %w", path, err)
		}
	}

	if id, _ := cmd.Flags().GetString("student"); id != "" {
		profile.ID = id
	}
	if mastered, _ := cmd.Flags().GetStringSlice("mastered"); len(mastered) > 0 {
		profile.MasteredTopics = mastered
	}
	if goals, _ := cmd.Flags().GetStringSlice("goal"); len(goals) > 0 {
		profile.LearningGoals = goals
	}
	return profile, nil
}

func init() {
	generateCmd.Flags().StringP("profile", "p", "", "Student profile JSON file")
	generateCmd.Flags().String("student", "", "Student ID (overrides the profile)")
	generateCmd.Flags().StringSlice("mastered", nil, "Mastered topics (overrides the profile)")
	generateCmd.Flags().StringSlice("goal", nil, "Learning goals (overrides the profile)")
	generateCmd.Flags().StringP("strategy", "s", planner.ReviewName, "Pedagogical strategy: REVIEW, NEW_TOPIC_INTRODUCTION or CHALLENGE")
	generateCmd.Flags().IntP("budget", "b", 30, "Maximum total time in minutes")
	generateCmd.Flags().Bool("json", false, "Print the result as JSON")
}
