package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appver "github.com/open-cli-collective/opencli-mcp/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print opencli-mcp version",
	Run: func(cmd *cobra.Command, args []string) {
		// keep output simple for scripting
		fmt.Println(appver.AppVersion)
	},
}
