package fan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var speedCmd = &cobra.Command{
	Use:   "speed <code>",
	Short: "Switch to manual control and set the fans to the given speed code (e.g. 0x14 or 20)",
	Long: `Note that a running ipmi2go daemon will overwrite this setting on its
next band change. Use "ipmi2go fan auto" to hand control back to the firmware.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := parseSpeedArg(args[0])
		if err != nil {
			return err
		}

		fan := getFan()
		if err := fan.SetManual(context.Background(), speed); err != nil {
			return err
		}
		ui.Success("Fan speed of '%s' set to %s", fan.GetId(), speed)
		return nil
	},
}

func init() {
	Command.AddCommand(speedCmd)
}

// parseSpeedArg accepts hex ("0x14") and decimal ("20") speed values in [0..255]
func parseSpeedArg(arg string) (configuration.SpeedCode, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(arg), 0, 8)
	if err != nil {
		return "", fmt.Errorf("invalid speed '%s', expected a value in [0..255]", arg)
	}
	return configuration.NewSpeedCode(int(value)), nil
}
