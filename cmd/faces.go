package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Screenshots a page element repeatedly into numbered PNG files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("count") {
			cfg.Faces.Count, _ = cmd.Flags().GetInt("count")
		}
		if cmd.Flags().Changed("dir") {
			cfg.Faces.Dir, _ = cmd.Flags().GetString("dir")
		}

		paths, err := runFaces(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(facesCmd)
	facesCmd.Flags().Int("count", 0, "Number of screenshots to take (overrides config)")
	facesCmd.Flags().String("dir", "", "Directory the screenshots are written to (overrides config)")
}
