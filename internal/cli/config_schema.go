package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/opencli-mcp/internal/config"
)

func init() {
	configCmd.AddCommand(configSchemaCmd)
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for settings.json",
	Long:  "Write the settings.json JSON Schema to stdout, for editor validation and docs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.MarshalSchema(config.SettingsSchema())
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}
