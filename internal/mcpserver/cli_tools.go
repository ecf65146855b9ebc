package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/open-cli-collective/opencli-mcp/internal/system"
	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

// CLIArgs is the input of every generic CLI tool. Arguments are passed
// as one string and split like a POSIX shell would, minus expansions.
type CLIArgs struct {
	Args string `json:"args" jsonschema:"space-separated arguments for the CLI; quote values containing spaces, e.g. issues create --summary 'Fix login bug'"`
}

// HelpArgs selects the CLI (and optionally a subcommand) to show help
// for.
type HelpArgs struct {
	CLI        string `json:"cli" jsonschema:"tool ID: jira-ticket-cli, slck, cfl, newrelic-cli or gro"`
	Subcommand string `json:"subcommand,omitempty" jsonschema:"optional subcommand path, e.g. 'issues create'"`
}

// Protocol tool names stay stable even though the binaries they wrap
// have been renamed over the years.
var cliToolNames = map[tools.ToolID]string{
	tools.ToolJira:     "jira_cli",
	tools.ToolSlack:    "slack_cli",
	tools.ToolConfl:    "confluence_cli",
	tools.ToolNewRelic: "newrelic_cli",
	tools.ToolGoogle:   "google_cli",
}

var cliToolDocs = map[tools.ToolID]string{
	tools.ToolJira: `Run jira-ticket-cli for Jira operations.
Common commands: 'issues get KEY-123', 'issues create --summary "..." --type Task',
'issues update KEY-123 --status "In Progress"', 'issues comment KEY-123 --body "..."',
'sprint list', 'board list'. Add '--output json' for machine-readable output.
Call cli_help for the full command tree.`,
	tools.ToolSlack: `Run slck for Slack operations.
Common commands: 'search messages "deploy failed" --count 20', 'send --channel "#eng" --text "..."',
'channels list', 'users lookup @name'. Add '--output json' for machine-readable output.
Call cli_help for the full command tree.`,
	tools.ToolConfl: `Run cfl for Confluence operations.
Common commands: 'search "runbook" --limit 25', 'page get SPACE:Title', 'page create --space ENG --title "..."',
'spaces list'. Add '--output json' for machine-readable output.
Call cli_help for the full command tree.`,
	tools.ToolNewRelic: `Run newrelic-cli for New Relic operations.
Common commands: 'nrql query "SELECT count(*) FROM Transaction SINCE 1 hour ago"',
'alerts list', 'dashboards list', 'apm list'. Add '--output json' for machine-readable output.
Call cli_help for the full command tree.`,
	tools.ToolGoogle: `Run gro for read-only Google Workspace access.
Common commands: 'gmail search --query "from:alerts" --limit 20', 'calendar today',
'calendar week', 'drive search "design doc" --limit 20'. Add '--json' for machine-readable output.
Call cli_help for the full command tree.`,
}

func toolName(id tools.ToolID) string {
	if n, ok := cliToolNames[id]; ok {
		return n
	}
	return strings.ReplaceAll(string(id), "-", "_") + "_cli"
}

func toolDoc(d tools.ToolDescriptor) string {
	if doc, ok := cliToolDocs[d.ID]; ok {
		return doc
	}
	return fmt.Sprintf("Run %s. %s Call cli_help for the full command tree.", d.Binary, d.Summary)
}

func (s *Server) registerCLITools() {
	for _, d := range s.dispatcher.Registry().Descriptors() {
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        toolName(d.ID),
			Description: toolDoc(d),
		}, s.cliHandler(d.ID))
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "cli_help",
		Description: "Show help for one of the wrapped CLIs, optionally for a specific subcommand. " +
			"Use this to discover flags before calling the CLI tools.",
	}, s.helpHandler())
}

func (s *Server) cliHandler(id tools.ToolID) mcp.ToolHandlerFor[CLIArgs, tools.CLIResult] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in CLIArgs) (*mcp.CallToolResult, tools.CLIResult, error) {
		start := time.Now()
		res, err := s.dispatcher.Dispatch(ctx, id, in.Args, false)
		if err != nil {
			system.Logger.Warn("dispatch failed", "tool", id, "err", err)
			return errResult(err.Error()), failedCLIResult(err), nil
		}
		system.Logger.Debug("dispatched", "tool", id, "exit", res.ExitCode, "took", time.Since(start))
		return nil, tools.ResultFrom(res), nil
	}
}

func (s *Server) helpHandler() mcp.ToolHandlerFor[HelpArgs, tools.CLIResult] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in HelpArgs) (*mcp.CallToolResult, tools.CLIResult, error) {
		id := tools.ToolID(strings.TrimSpace(in.CLI))
		if !s.dispatcher.Registry().Has(id) {
			msg := fmt.Sprintf("unknown CLI %q; available: %s", in.CLI, joinToolIDs(s.dispatcher.Registry().IDs()))
			if sug := s.dispatcher.Registry().Suggest(string(id)); len(sug) > 0 {
				msg = fmt.Sprintf("unknown CLI %q (did you mean %s?); available: %s",
					in.CLI, sug[0], joinToolIDs(s.dispatcher.Registry().IDs()))
			}
			return errResult(msg), tools.CLIResult{OK: false, ExitCode: -1, Error: msg}, nil
		}
		res, err := s.dispatcher.Help(ctx, id, in.Subcommand)
		if err != nil {
			return errResult(err.Error()), failedCLIResult(err), nil
		}
		return nil, tools.ResultFrom(res), nil
	}
}

func joinToolIDs(ids []tools.ToolID) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = string(id)
	}
	return strings.Join(ss, ", ")
}
