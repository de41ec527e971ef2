package fan

import (
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/fans"
	"github.com/markusressel/ipmi2go/internal/ipmi"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getFan() fans.Fan {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	config := configuration.CurrentConfig
	return fans.NewIpmiFan(config.Controller.ID, config.Ipmi.Raw, ipmi.NewClient(config.Ipmi))
}
