package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	toolsCmd.AddCommand(toolsLsRemoteCmd)
}

var toolsLsRemoteCmd = &cobra.Command{
	Use:   "ls-remote",
	Short: "List the latest published versions of the wrapped tools",
	Long:  "Query the package index (Homebrew cask) for each tool's latest version without touching the local installs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, rec, err := buildStack()
		if err != nil {
			return err
		}
		for _, id := range rec.Registry().IDs() {
			latest, lerr := rec.LatestVersion(cmd.Context(), id)
			if lerr != nil {
				fmt.Printf("- %s: (lookup failed: %v)\n", id, lerr)
				continue
			}
			fmt.Printf("- %s: %s\n", id, latest)
		}
		return nil
	},
}
