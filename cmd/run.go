package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the search and faces flows side by side",
	Long: `Runs both flows at the same time. Each flow opens its own browser and
stays strictly sequential; the first failure cancels the other flow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")

		var collected, shots int
		eg, egCtx := errgroup.WithContext(cmd.Context())

		eg.Go(func() error {
			collection, err := runSearch(egCtx, source)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			collected = collection.Len()
			return nil
		})

		eg.Go(func() error {
			paths, err := runFaces(egCtx)
			if err != nil {
				return fmt.Errorf("faces: %w", err)
			}
			shots = len(paths)
			return nil
		})

		if err := eg.Wait(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Appended %d repositories to %s, wrote %d screenshots to %s\n",
			collected, cfg.Search.Output, shots, cfg.Faces.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("source", sourceBrowser, "Where search results come from: browser or api")
}
