package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/config"
	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

var rootCmd = &cobra.Command{
	Use:   "opencli-mcp",
	Short: "opencli-mcp – MCP server for the collective's CLI tools",
	Long: "opencli-mcp exposes the team's installed CLIs (Jira, Slack, Confluence, " +
		"New Relic, Google Workspace) as MCP tools, and manages their install and " +
		"update lifecycle through Homebrew.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: serve MCP over stdio
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildStack loads settings and assembles the dispatch and reconcile
// layers over the enabled tools.
func buildStack() (config.Settings, *tools.Dispatcher, *tools.Reconciler, error) {
	st, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, nil, nil, err
	}
	reg := tools.Default().Without(st.Disabled...)
	disp := tools.NewDispatcher(reg, st.DispatchTimeout())
	rec := tools.NewReconciler(reg, tools.Timeouts{
		Version: st.VersionTimeout(),
		Index:   st.IndexTimeout(),
		Update:  st.UpdateTimeout(),
	})
	if st.BrewPath != "" {
		rec.WithManager(tools.SourceCask, tools.NewBrewAt(st.BrewPath))
	}
	return st, disp, rec, nil
}
