package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/config"
	"github.com/open-cli-collective/opencli-mcp/internal/mcpserver"
	"github.com/open-cli-collective/opencli-mcp/internal/ops"
	"github.com/open-cli-collective/opencli-mcp/internal/system"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("http", false, "serve over streamable HTTP instead of stdio")
	serveCmd.Flags().StringP("addr", "a", "", "address to bind in HTTP mode (host:port, default from settings)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio by default)",
	Long: "Serve the MCP tool surface over stdio, or over streamable HTTP with --http. " +
		"HTTP mode also exposes the ops endpoints (/api/health, /api/tools/status).",
	RunE: func(cmd *cobra.Command, args []string) error {
		useHTTP, _ := cmd.Flags().GetBool("http")
		addr, _ := cmd.Flags().GetString("addr")

		st, disp, rec, err := buildStack()
		if err != nil {
			return err
		}
		srv := mcpserver.New(disp, rec)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		// Settings edits need a restart to take effect; say so instead of
		// silently ignoring them.
		go func() {
			if werr := config.Watch(ctx, func() {
				system.Logger.Info("settings.json changed; restart to apply")
			}); werr != nil {
				system.Logger.Warn("settings watcher unavailable", "err", werr)
			}
		}()

		if useHTTP {
			if addr == "" {
				addr = st.Addr()
			}
			o := &ops.Server{Addr: addr, Rec: rec, MCP: srv.HTTPHandler()}
			if err := o.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}

		system.Logger.Info("serving MCP over stdio", "tools", disp.Registry().Len())
		return srv.Run(ctx)
	},
}
