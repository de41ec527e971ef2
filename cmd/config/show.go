package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const redacted = "********"

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration, including defaults and environment overrides",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		out, err := renderSettings(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}

// renderSettings encodes the given settings as YAML with the ipmi password redacted
func renderSettings(settings map[string]interface{}) (string, error) {
	if ipmiSettings, ok := settings["ipmi"].(map[string]interface{}); ok {
		if password, ok := ipmiSettings["password"].(string); ok && len(password) > 0 {
			ipmiSettings["password"] = redacted
		}
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("unable to encode configuration: %w", err)
	}
	return string(out), nil
}
