package mcpserver

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

// Wrapper inputs. Each wrapper assembles argv itself, so quoting rules
// never apply to these values.

type IssueKeyArgs struct {
	IssueKey string `json:"issue_key" jsonschema:"Jira issue key, e.g. PROJ-123"`
}

type SlackSearchArgs struct {
	Query string `json:"query" jsonschema:"Slack search query; supports modifiers like in:#channel and from:@user"`
	Count int    `json:"count,omitempty" jsonschema:"maximum number of messages to return (default 20)"`
}

type ConfluenceSearchArgs struct {
	Query string `json:"query" jsonschema:"text or CQL to search pages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of pages to return (default 25)"`
}

type GmailSearchArgs struct {
	Query string `json:"query" jsonschema:"Gmail search query, e.g. 'from:alerts@example.com is:unread'"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of messages to return (default 20)"`
}

type DriveSearchArgs struct {
	Query string `json:"query" jsonschema:"Drive filename or full-text query"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of files to return (default 20)"`
}

type NoArgs struct{}

// addWrapper registers one convenience wrapper: a named shortcut that
// builds argv for an underlying CLI and always asks for JSON output.
func addWrapper[In any](s *Server, name, desc string, id tools.ToolID, build func(In) ([]string, error)) {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: name, Description: desc},
		func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, tools.CLIResult, error) {
			argv, err := build(in)
			if err != nil {
				return errResult(err.Error()), failedCLIResult(err), nil
			}
			res, err := s.dispatcher.DispatchArgv(ctx, id, argv, true)
			if err != nil {
				return errResult(err.Error()), failedCLIResult(err), nil
			}
			return nil, tools.ResultFrom(res), nil
		})
}

func (s *Server) registerWrappers() {
	addWrapper(s, "jira_get_issue",
		"Fetch a single Jira issue by key. Returns the issue as JSON.",
		tools.ToolJira, buildJiraGetIssue)
	addWrapper(s, "slack_search_messages",
		"Search Slack messages. Returns matching messages as JSON.",
		tools.ToolSlack, buildSlackSearch)
	addWrapper(s, "confluence_search",
		"Search Confluence pages. Returns matching pages as JSON.",
		tools.ToolConfl, buildConfluenceSearch)
	addWrapper(s, "gmail_search",
		"Search Gmail messages (read-only). Returns matching messages as JSON.",
		tools.ToolGoogle, buildGmailSearch)
	addWrapper(s, "calendar_today",
		"List today's Google Calendar events. Returns events as JSON.",
		tools.ToolGoogle, buildCalendarToday)
	addWrapper(s, "drive_search",
		"Search Google Drive files (read-only). Returns matching files as JSON.",
		tools.ToolGoogle, buildDriveSearch)
}

func buildJiraGetIssue(in IssueKeyArgs) ([]string, error) {
	key, err := required(in.IssueKey, "issue_key")
	if err != nil {
		return nil, err
	}
	return []string{"issues", "get", key}, nil
}

func buildSlackSearch(in SlackSearchArgs) ([]string, error) {
	q, err := required(in.Query, "query")
	if err != nil {
		return nil, err
	}
	return []string{"search", "messages", q, "--count", strconv.Itoa(orDefault(in.Count, 20))}, nil
}

func buildConfluenceSearch(in ConfluenceSearchArgs) ([]string, error) {
	q, err := required(in.Query, "query")
	if err != nil {
		return nil, err
	}
	return []string{"search", q, "--limit", strconv.Itoa(orDefault(in.Limit, 25))}, nil
}

func buildGmailSearch(in GmailSearchArgs) ([]string, error) {
	q, err := required(in.Query, "query")
	if err != nil {
		return nil, err
	}
	return []string{"gmail", "search", "--query", q, "--limit", strconv.Itoa(orDefault(in.Limit, 20))}, nil
}

func buildCalendarToday(NoArgs) ([]string, error) {
	return []string{"calendar", "today"}, nil
}

func buildDriveSearch(in DriveSearchArgs) ([]string, error) {
	q, err := required(in.Query, "query")
	if err != nil {
		return nil, err
	}
	return []string{"drive", "search", q, "--limit", strconv.Itoa(orDefault(in.Limit, 20))}, nil
}

func required(v, field string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errors.New(field + " is required")
	}
	return v, nil
}

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
