package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-harvest/internal/usecase"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Harvests repositories from GitHub advanced search into a file",
	Long: `Signs into GitHub, runs the advanced search configured in the config file,
sorts by most stars and pages through the results. Every new repository is
appended to the output file once the last page has been read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		if cmd.Flags().Changed("pages") {
			cfg.Search.Pages, _ = cmd.Flags().GetInt("pages")
		}
		if cmd.Flags().Changed("output") {
			cfg.Search.Output, _ = cmd.Flags().GetString("output")
		}

		collection, err := runSearch(cmd.Context(), source)
		if errors.Is(err, usecase.ErrResultsRemaining) {
			logger.Warn("last page still lists results", zap.Int("collected", collection.Len()))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Appended %d repositories to %s\n", collection.Len(), cfg.Search.Output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("source", sourceBrowser, "Where results come from: browser or api")
	searchCmd.Flags().Int("pages", 0, "Number of result pages to read (overrides config)")
	searchCmd.Flags().StringP("output", "o", "", "File the entries are appended to (overrides config)")
}
