package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-harvest/internal/browser"
	"github.com/naka-gawa/github-harvest/internal/domain"
	"github.com/naka-gawa/github-harvest/internal/store"
	"github.com/naka-gawa/github-harvest/internal/usecase"
)

var extractCmd = &cobra.Command{
	Use:   "extract <page.html>...",
	Short: "Extracts entries from saved search result pages",
	Long: `Runs the same extraction as the search flow over saved HTML pages, in the
order given, and prints the deduplicated entries. Use --append to also write
them to the configured output file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sel := usecase.Selectors{Name: cfg.Search.NameSelector, Star: cfg.Search.StarSelector}
		collection := domain.NewCollection(cfg.Search.HostPrefix)

		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open page: %w", err)
			}
			snap, err := browser.NewSnapshot(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if _, err := usecase.Extract(ctx, snap, sel, collection); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		for _, line := range collection.Lines() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		if appendOut, _ := cmd.Flags().GetBool("append"); appendOut {
			return store.AppendLines(cfg.Search.Output, collection.Lines())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Bool("append", false, "Append the entries to the configured output file")
}
