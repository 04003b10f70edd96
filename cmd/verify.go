package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-harvest/internal/gateway"
	"github.com/naka-gawa/github-harvest/internal/report"
	"github.com/naka-gawa/github-harvest/internal/store"
	"github.com/naka-gawa/github-harvest/internal/usecase"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compares harvested star counts with the GitHub API",
	Long: `Reads a harvest file and fetches the exact stargazer count of every
repository through the GraphQL API, then lists the entries whose count moved.
Requires the GITHUB_TOKEN environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Verify.Token == "" {
			return errors.New("GITHUB_TOKEN environment variable is not set")
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Verify.Concurrency, _ = cmd.Flags().GetInt("concurrency")
		}

		entries, err := store.ReadEntries(inputPath(cmd))
		if err != nil {
			return err
		}

		// Inject dependencies and run the main business logic.
		fetcher, err := gateway.NewGitHubGateway(cfg.Verify.Token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		verifier := usecase.NewVerifier(fetcher, cfg.Verify.Concurrency, logger)

		checks, err := verifier.Verify(cmd.Context(), entries, cfg.Search.HostPrefix)
		if err != nil {
			return fmt.Errorf("failed to verify harvest: %w", err)
		}
		report.RenderChecks(cmd.OutOrStdout(), checks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringP("input", "i", "", "Harvest file to read (defaults to the configured output)")
	verifyCmd.Flags().Int("concurrency", 0, "Concurrent API lookups (overrides config)")
}
