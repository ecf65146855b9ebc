package cli

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/ui"
)

// toolsCmd groups the lifecycle subcommands; bare `tools` opens the
// interactive status dashboard.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Manage the wrapped CLI tools",
	Long:  "Inspect, install and update the wrapped CLI tools. Without a subcommand an interactive dashboard opens.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, rec, err := buildStack()
		if err != nil {
			return err
		}
		return ui.Run(rec)
	},
}

func init() { rootCmd.AddCommand(toolsCmd) }
