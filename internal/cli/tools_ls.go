package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	toolsCmd.AddCommand(toolsLsCmd)
}

var toolsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List wrapped tools with install state and versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, rec, err := buildStack()
		if err != nil {
			return err
		}
		for _, st := range rec.StatusAll(cmd.Context(), true) {
			fmt.Println(statusLine(st))
		}
		return nil
	},
}
