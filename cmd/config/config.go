package config

import (
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "config",
	Short:            "Configuration related commands",
	Long:             ``,
	TraverseChildren: true,
}

// loadConfig reads and decodes the config file given by the root command (-c)
func loadConfig() string {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	return configPath
}
