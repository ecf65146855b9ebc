package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output JSON report")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show install state and versions of the wrapped CLIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, rec, err := buildStack()
		if err != nil {
			return err
		}
		sts := rec.StatusAll(cmd.Context(), true)
		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sts)
		}
		for _, st := range sts {
			fmt.Println(statusLine(st))
		}
		return nil
	},
}

func statusLine(st tools.ToolStatus) string {
	var line strings.Builder
	line.WriteString(fmt.Sprintf("- %s: ", st.ID))
	if !st.Installed {
		line.WriteString("not installed")
		if strings.TrimSpace(st.Err) != "" {
			line.WriteString(fmt.Sprintf(" (%s)", st.Err))
		}
		return line.String()
	}
	ver := strings.TrimSpace(st.Version)
	if ver == "" {
		ver = "?"
	}
	switch {
	case st.Latest != "" && tools.IsNewer(st.Latest, ver):
		line.WriteString(fmt.Sprintf("%s → update available %s", ver, st.Latest))
	case st.Latest != "":
		line.WriteString(fmt.Sprintf("%s (latest %s)", ver, st.Latest))
	default:
		line.WriteString(ver)
	}
	return line.String()
}
