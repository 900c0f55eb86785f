package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/problemgen"
)

var problemsCmd = &cobra.Command{
	Use:     "problems",
	Aliases: []string{"problem"},
	Short:   "Manage the problem catalog",
}

var problemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		if difficulty != 0 && (difficulty < catalog.MinDifficulty || difficulty > catalog.MaxDifficulty) {
			return fmt.Errorf("difficulty must be between %d and %d", catalog.MinDifficulty, catalog.MaxDifficulty)
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		problems, err := rt.catalog.List(cmd.Context(), catalog.Filter{Topic: topic, Difficulty: difficulty})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, nonNilProblems(problems))
		}
		if len(problems) == 0 {
			fmt.Fprintln(out, "No problems found.")
			return nil
		}
		printProblemTable(out, problems)
		return nil
	},
}

var problemsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one problem as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.catalog.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), p)
	},
}

var problemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a problem to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			id = uuid.NewString()
		}
		text, _ := cmd.Flags().GetString("text")
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		minutes, _ := cmd.Flags().GetInt("minutes")

		p := catalog.Problem{
			ID:               id,
			Text:             text,
			Topic:            topic,
			Difficulty:       difficulty,
			EstimatedMinutes: minutes,
		}
		if err := catalog.Validate(p); err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.catalog.Create(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p.ID)
		return nil
	},
}

var problemsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a JSON array of problems",
	Long: "Import a JSON array of problems. Problems whose ID already exists are\n" +
		"skipped unless --replace is given, in which case they are updated.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var problems []catalog.Problem
		if err := json.Unmarshal(data, &problems); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		for i, p := range problems {
			if err := catalog.Validate(p); err != nil {
				return fmt.Errorf("problem %d: %w", i, err)
			}
		}

		replace, _ := cmd.Flags().GetBool("replace")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		var added, updated, skipped int
		for _, p := range problems {
			err := rt.catalog.Create(ctx, p)
			var conflict *catalog.ConflictError
			switch {
			case err == nil:
				added++
			case errors.As(err, &conflict) && replace:
				if err := rt.catalog.Update(ctx, p.ID, p); err != nil {
					return err
				}
				updated++
			case errors.As(err, &conflict):
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipping %s: already exists\n", p.ID)
				skipped++
			default:
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d problems (%d updated, %d skipped)\n", added, updated, skipped)
		return nil
	},
}

var problemsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a problem",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.catalog.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var problemsAuthorCmd = &cobra.Command{
	Use:   "author",
	Short: "Write a new problem with the configured LLM and add it",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		gen, err := rt.generator(ctx)
		if err != nil {
			return err
		}
		if gen == nil {
			return fmt.Errorf("no LLM provider configured; set llm.provider or an API key")
		}

		existing, err := rt.catalog.List(ctx, catalog.Filter{Topic: topic})
		if err != nil {
			return err
		}
		texts := make([]string, len(existing))
		for i, p := range existing {
			texts[i] = p.Text
		}

		p, err := gen.Generate(ctx, problemgen.Input{
			Topic:         topic,
			Difficulty:    difficulty,
			ExistingTexts: texts,
		})
		if err != nil {
			return fmt.Errorf("author problem: %w", err)
		}

		if !dryRun {
			if err := rt.catalog.Create(ctx, p); err != nil {
				return err
			}
		}
		return writeJSON(cmd.OutOrStdout(), p)
	},
}

func printProblemTable(w io.Writer, problems []catalog.Problem) {
	fmt.Fprintf(w, "%-12s  %-18s  %4s  %4s  %s\n", "ID", "Topic", "Diff", "Min", "Text")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for _, p := range problems {
		fmt.Fprintf(w, "%-12s  %-18s  %4d  %4d  %s\n",
			truncate(p.ID, 12),
			truncate(p.Topic, 18),
			p.Difficulty,
			p.EstimatedMinutes,
			truncate(strings.Join(strings.Fields(p.Text), " "), 44),
		)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNilProblems(p []catalog.Problem) []catalog.Problem {
	if p == nil {
		return []catalog.Problem{}
	}
	return p
}

func init() {
	problemsListCmd.Flags().StringP("topic", "t", "", "Only problems with this exact topic")
	problemsListCmd.Flags().IntP("difficulty", "d", 0, "Only problems with this difficulty (1-5)")
	problemsListCmd.Flags().Bool("json", false, "Print as JSON")

	problemsAddCmd.Flags().String("id", "", "Problem ID (default: a new UUID)")
	problemsAddCmd.Flags().String("text", "", "Problem text")
	problemsAddCmd.Flags().StringP("topic", "t", "", "Topic")
	problemsAddCmd.Flags().IntP("difficulty", "d", 1, "Difficulty (1-5)")
	problemsAddCmd.Flags().IntP("minutes", "m", 1, "Estimated minutes to solve")
	_ = problemsAddCmd.MarkFlagRequired("text")
	_ = problemsAddCmd.MarkFlagRequired("topic")

	problemsImportCmd.Flags().Bool("replace", false, "Update problems whose ID already exists")

	problemsAuthorCmd.Flags().StringP("topic", "t", "", "Topic")
	problemsAuthorCmd.Flags().IntP("difficulty", "d", 1, "Difficulty (1-5)")
	problemsAuthorCmd.Flags().Bool("dry-run", false, "Print the problem without adding it")
	_ = problemsAuthorCmd.MarkFlagRequired("topic")

	problemsCmd.AddCommand(problemsListCmd)
	problemsCmd.AddCommand(problemsGetCmd)
	problemsCmd.AddCommand(problemsAddCmd)
	problemsCmd.AddCommand(problemsImportCmd)
	problemsCmd.AddCommand(problemsDeleteCmd)
	problemsCmd.AddCommand(problemsAuthorCmd)
}
