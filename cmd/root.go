package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/assessgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "assessgen",
	Short: "Personalized math assessment generator",
	Long: "assessgen plans a math assessment from a student profile and a pedagogical\n" +
		"strategy, then selects catalog problems that fit a time budget.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ASSESSGEN_DB env var)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the sqlite catalog path from config, then ASSESSGEN_DB, then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
