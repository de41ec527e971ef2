package threshold

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "threshold",
	Short:            "Threshold table related commands",
	TraverseChildren: true,
}
