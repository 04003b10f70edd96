package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-harvest/internal/report"
	"github.com/naka-gawa/github-harvest/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Prints star statistics and the top repositories of a harvest file",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := inputPath(cmd)
		top, _ := cmd.Flags().GetInt("top")

		entries, err := store.ReadEntries(input)
		if err != nil {
			return err
		}
		s, err := report.Summarize(entries)
		if err != nil {
			return err
		}
		report.RenderSummary(cmd.OutOrStdout(), s, entries, top)
		return nil
	},
}

// inputPath returns --input when given, otherwise the configured output file.
func inputPath(cmd *cobra.Command) string {
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		return input
	}
	return cfg.Search.Output
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("input", "i", "", "Harvest file to read (defaults to the configured output)")
	summaryCmd.Flags().Int("top", 20, "Number of repositories to list, 0 for all")
}
