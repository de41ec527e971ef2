package cmd

import (
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ipmi2go",
	Long:  `All software has versions. This is ipmi2go's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
