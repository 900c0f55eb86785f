package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/assessgen/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		student, _ := cmd.Flags().GetString("student")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		events, err := rt.store.EventRepo().QueryAssessmentEvents(cmd.Context(), student, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No assessments generated yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-12s  %-22s  %-7s  %-9s  %s\n",
			"Timestamp", "Student", "Strategy", "Diff", "Minutes", "Problems")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			student := e.StudentID
			if student == "" {
				student = "-"
			}
			fmt.Fprintf(out, "%-19s  %-12s  %-22s  %-7s  %-9s  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(student, 12),
				e.Strategy,
				fmt.Sprintf("%d-%d", e.DifficultyLow, e.DifficultyHigh),
				fmt.Sprintf("%d/%d", e.TotalMinutes, e.BudgetMinutes),
				strings.Join(e.SelectedIDs, ", "),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().String("student", "", "Only events for this student ID")
}
