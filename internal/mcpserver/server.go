// Package mcpserver exposes the wrapped CLIs over the Model Context
// Protocol: one generic tool per CLI, convenience wrappers for common
// calls and management tools for the install/update lifecycle.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
	appver "github.com/open-cli-collective/opencli-mcp/internal/version"
)

const serverName = "open-cli-mcp"

// Server bundles the protocol server with the dispatch and lifecycle
// layers behind it.
type Server struct {
	mcp        *mcp.Server
	dispatcher *tools.Dispatcher
	reconciler *tools.Reconciler
}

// New assembles the server and registers the whole tool surface.
func New(dispatcher *tools.Dispatcher, reconciler *tools.Reconciler) *Server {
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Title:   "Open CLI MCP Server",
			Version: appver.AppVersion,
		}, nil),
		dispatcher: dispatcher,
		reconciler: reconciler,
	}
	s.registerCLITools()
	s.registerWrappers()
	s.registerManagement()
	return s
}

// Run serves the protocol over stdio until ctx ends or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler exposes the same server over the streamable HTTP
// transport. Every session talks to the one underlying server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
}

// errResult marks a caller-visible failure without failing the protocol
// call itself; clients read the text and recover.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// failedCLIResult is the structured twin of an errResult for tools
// whose output schema is CLIResult.
func failedCLIResult(err error) tools.CLIResult {
	return tools.CLIResult{OK: false, ExitCode: -1, Error: err.Error()}
}
