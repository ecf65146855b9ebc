package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

func init() {
	toolsCmd.AddCommand(toolsInstallCmd)
}

var toolsInstallCmd = &cobra.Command{
	Use:   "install [tool...]",
	Short: "Install wrapped tools via their package manager",
	Long:  "Install each named tool, tapping its Homebrew tap first when needed. Without arguments every missing tool is installed.",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, rec, err := buildStack()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			cands, ierr := rec.InstallMissing(cmd.Context())
			if ierr != nil {
				return ierr
			}
			if len(cands) == 0 {
				fmt.Println("all tools already installed")
				return nil
			}
			for _, c := range cands {
				fmt.Printf("%s %s: %s\n", candidateMark(c.State), c.ID, candidateNote(c))
			}
			return nil
		}
		for _, a := range args {
			c, ierr := rec.Install(cmd.Context(), tools.ToolID(a))
			if ierr != nil {
				fmt.Printf("× %s: %v\n", a, ierr)
				continue
			}
			fmt.Printf("%s %s: %s\n", candidateMark(c.State), c.ID, candidateNote(c))
		}
		return nil
	},
}
