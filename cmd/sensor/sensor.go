package sensor

import (
	"context"
	"fmt"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ipmi"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorName string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Print the current value of the temperature sensor",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor := getSensor()

		value, err := sensor.ReadTemperature(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%v\n", value)
		return nil
	},
}

func init() {
	Command.Flags().StringVarP(
		&sensorName,
		"name", "n",
		"",
		"IPMI sensor name, overrides ipmi.sensor of the config",
	)
}

func getSensor() sensors.Sensor {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	config := configuration.CurrentConfig.Ipmi
	name := config.Sensor
	if len(sensorName) > 0 {
		name = sensorName
	}

	return sensors.NewIpmiSensor(name, ipmi.NewClient(config))
}
