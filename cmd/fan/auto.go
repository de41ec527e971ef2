package fan

import (
	"context"

	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Hand fan control back to the firmware",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fan := getFan()

		if err := fan.SetAutomatic(context.Background()); err != nil {
			return err
		}
		ui.Success("Fan control of '%s' is automatic", fan.GetId())
		return nil
	},
}

func init() {
	Command.AddCommand(autoCmd)
}
