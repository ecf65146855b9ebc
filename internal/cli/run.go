package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

var runJSON bool

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runJSON, "json", false, "append the tool's machine-readable output flag")
	// everything after the tool name belongs to the tool
	runCmd.Flags().SetInterspersed(false)
}

var runCmd = &cobra.Command{
	Use:   "run <tool> [args...]",
	Short: "Invoke a wrapped CLI once and exit with its status",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, disp, _, err := buildStack()
		if err != nil {
			return err
		}
		res, err := disp.DispatchArgv(cmd.Context(), tools.ToolID(args[0]), args[1:], runJSON)
		if err != nil {
			return err
		}
		if res.Stdout != "" {
			fmt.Print(res.Stdout)
		}
		if res.Stderr != "" {
			fmt.Fprint(os.Stderr, res.Stderr)
		}
		if res.TimedOut {
			return fmt.Errorf("%s timed out", args[0])
		}
		if res.ExitCode != 0 {
			os.Exit(res.ExitCode)
		}
		return nil
	},
}
