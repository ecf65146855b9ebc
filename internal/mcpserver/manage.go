package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/open-cli-collective/opencli-mcp/internal/system"
	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

// StatusRow augments a tool status with the derived update flag so
// clients never re-implement the version comparison.
type StatusRow struct {
	tools.ToolStatus
	UpdateAvailable bool `json:"update_available"`
}

type StatusOutput struct {
	Tools []StatusRow `json:"tools"`
}

type CheckOutput struct {
	UpdatesAvailable bool                    `json:"updates_available"`
	Tools            []tools.UpdateCandidate `json:"tools"`
	Message          string                  `json:"message"`
}

type UpdateArgs struct {
	Tools []string `json:"tools,omitempty" jsonschema:"tool IDs to update; empty updates every tool with a newer version. Unknown IDs are ignored"`
}

type UpdateOutput struct {
	Updated []tools.ToolID          `json:"updated"`
	Results []tools.UpdateCandidate `json:"results"`
	Message string                  `json:"message"`
}

type InstallOutput struct {
	Missing []tools.ToolID          `json:"missing_tools"`
	Results []tools.UpdateCandidate `json:"results"`
	Message string                  `json:"message"`
}

func (s *Server) registerManagement() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "list_tools_status",
		Description: "Report every wrapped CLI: install path, installed version, " +
			"latest published version and whether an update is available.",
	}, s.statusHandler())

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "check_for_updates",
		Description: "Check the package index for newer versions of the wrapped CLIs without installing anything.",
	}, s.checkHandler())

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "update_tools",
		Description: "Update wrapped CLIs to their latest published versions. " +
			"Pass tool IDs to restrict the set; by default every tool with a newer version is updated.",
	}, s.updateHandler())

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "install_missing_tools",
		Description: "Install every wrapped CLI whose binary is missing from PATH, tapping package sources as needed.",
	}, s.installHandler())
}

func (s *Server) statusHandler() mcp.ToolHandlerFor[NoArgs, StatusOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, StatusOutput, error) {
		sts := s.reconciler.StatusAll(ctx, true)
		out := StatusOutput{Tools: make([]StatusRow, len(sts))}
		for i, st := range sts {
			out.Tools[i] = StatusRow{
				ToolStatus:      st,
				UpdateAvailable: tools.IsNewer(st.Latest, st.Version),
			}
		}
		return nil, out, nil
	}
}

func (s *Server) checkHandler() mcp.ToolHandlerFor[NoArgs, CheckOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, CheckOutput, error) {
		cands, err := s.reconciler.CheckUpdates(ctx, nil)
		if err != nil {
			return errResult(err.Error()), CheckOutput{Message: err.Error()}, nil
		}
		out := CheckOutput{Tools: cands}
		if n := countState(cands, tools.StateNeedsUpdate); n > 0 {
			out.UpdatesAvailable = true
			out.Message = fmt.Sprintf("%d tool(s) have updates available", n)
		} else {
			out.Message = "All tools are up to date"
		}
		return nil, out, nil
	}
}

func (s *Server) updateHandler() mcp.ToolHandlerFor[UpdateArgs, UpdateOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in UpdateArgs) (*mcp.CallToolResult, UpdateOutput, error) {
		ids := s.knownIDs(in.Tools)
		out := UpdateOutput{Updated: []tools.ToolID{}, Results: []tools.UpdateCandidate{}}
		if len(in.Tools) > 0 && len(ids) == 0 {
			out.Message = "none of the requested tools are known"
			return nil, out, nil
		}
		system.Logger.Info("update pass started", "requested", len(ids))
		cands, err := s.reconciler.ApplyUpdates(ctx, ids)
		if err != nil {
			return errResult(err.Error()), UpdateOutput{Message: err.Error()}, nil
		}
		out.Results = cands
		for _, c := range cands {
			if c.State == tools.StateUpdated {
				out.Updated = append(out.Updated, c.ID)
			}
		}
		if len(out.Updated) > 0 {
			out.Message = fmt.Sprintf("updated %d tool(s)", len(out.Updated))
		} else {
			out.Message = "All tools are up to date"
		}
		system.Logger.Info("update pass finished", "updated", len(out.Updated))
		return nil, out, nil
	}
}

func (s *Server) installHandler() mcp.ToolHandlerFor[NoArgs, InstallOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, InstallOutput, error) {
		cands, err := s.reconciler.InstallMissing(ctx)
		if err != nil {
			return errResult(err.Error()), InstallOutput{Message: err.Error()}, nil
		}
		out := InstallOutput{Missing: []tools.ToolID{}, Results: cands}
		if out.Results == nil {
			out.Results = []tools.UpdateCandidate{}
		}
		for _, c := range cands {
			out.Missing = append(out.Missing, c.ID)
		}
		if len(cands) == 0 {
			out.Message = "All tools are already installed"
		} else {
			out.Message = fmt.Sprintf("installed %d of %d missing tool(s)",
				countState(cands, tools.StateUpdated), len(cands))
		}
		return nil, out, nil
	}
}

// knownIDs keeps the requested IDs present in the registry, preserving
// request order.
func (s *Server) knownIDs(raw []string) []tools.ToolID {
	var ids []tools.ToolID
	for _, r := range raw {
		id := tools.ToolID(strings.TrimSpace(r))
		if s.reconciler.Registry().Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func countState(cands []tools.UpdateCandidate, st tools.UpdateState) int {
	n := 0
	for _, c := range cands {
		if c.State == st {
			n++
		}
	}
	return n
}
