package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/assessgen/internal/app"
	"github.com/abhisek/assessgen/internal/catalog"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the problem catalog interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetInt("difficulty")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		return app.Run(cmd.Context(), rt.catalog, catalog.Filter{Topic: topic, Difficulty: difficulty})
	},
}

func init() {
	browseCmd.Flags().StringP("topic", "t", "", "Only problems with this exact topic")
	browseCmd.Flags().IntP("difficulty", "d", 0, "Only problems with this difficulty (1-5)")
}
