package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

func init() {
	toolsCmd.AddCommand(toolsUpdateCmd)
}

var toolsUpdateCmd = &cobra.Command{
	Use:   "update [tool...]",
	Short: "Update wrapped tools to their latest published versions",
	Long:  "Check the package index and upgrade each named tool, or every tool when none are named.",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, rec, err := buildStack()
		if err != nil {
			return err
		}
		ids := make([]tools.ToolID, 0, len(args))
		for _, a := range args {
			id := tools.ToolID(strings.TrimSpace(a))
			if !rec.Registry().Has(id) {
				fmt.Printf("- %s: unknown tool, skipping\n", a)
				continue
			}
			ids = append(ids, id)
		}
		if len(args) > 0 && len(ids) == 0 {
			return nil
		}
		cands, err := rec.ApplyUpdates(cmd.Context(), ids)
		if err != nil {
			return err
		}
		updated := 0
		for _, c := range cands {
			if c.State == tools.StateUpdated {
				updated++
			}
			fmt.Printf("%s %s: %s\n", candidateMark(c.State), c.ID, candidateNote(c))
		}
		fmt.Printf("\n%d tool(s) updated\n", updated)
		return nil
	},
}

func candidateMark(st tools.UpdateState) string {
	switch st {
	case tools.StateUpdated:
		return "✓"
	case tools.StateUpdateFailed:
		return "×"
	default:
		return "•"
	}
}

func candidateNote(c tools.UpdateCandidate) string {
	if strings.TrimSpace(c.Detail) != "" {
		return c.Detail
	}
	return string(c.State)
}
