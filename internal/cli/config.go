package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/config"
)

func init() { rootCmd.AddCommand(configCmd) }

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Initialize and show the configuration",
	Long:  "Create settings.json with defaults when missing, then print the config location and effective values.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.SettingsPath()
		if err != nil {
			return err
		}
		st, err := config.LoadSettings()
		if err != nil {
			return err
		}
		if _, serr := os.Stat(p); os.IsNotExist(serr) {
			if err := config.SaveSettings(st); err != nil {
				return err
			}
			fmt.Printf("✓ created %s\n", p)
		} else {
			fmt.Printf("• keeping %s\n", p)
		}

		fmt.Printf("\nconfig file:      %s\n", p)
		fmt.Printf("dispatch timeout: %s\n", st.DispatchTimeout())
		fmt.Printf("version timeout:  %s\n", st.VersionTimeout())
		fmt.Printf("index timeout:    %s\n", st.IndexTimeout())
		fmt.Printf("update timeout:   %s\n", st.UpdateTimeout())
		fmt.Printf("ops address:      %s\n", st.Addr())
		if st.BrewPath != "" {
			fmt.Printf("brew path:        %s\n", st.BrewPath)
		}
		if len(st.Disabled) > 0 {
			fmt.Printf("disabled tools:   %s\n", strings.Join(st.Disabled, ", "))
		}
		return nil
	},
}
