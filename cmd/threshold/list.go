package threshold

import (
	"bytes"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/bands"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

// margin in °C plotted below the lowest band
const graphMargin = 5

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the threshold table and the resulting speed graph to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err = configuration.Validate(configPath)
		if err != nil {
			ui.Fatal(err.Error())
		}

		config := configuration.CurrentConfig.Controller
		thresholds, err := bands.NewTable(config)
		if err != nil {
			return err
		}

		// print table
		tab := table.Table{
			Headers: []string{"Band", "Temperature", "Speed", "Percent"},
			Rows:    tableRows(thresholds),
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln("Controller: %s", config.ID)
		ui.Printfln(buf.String())

		values, start, err := graphValues(thresholds)
		if err != nil {
			ui.Warning("Unable to plot speed graph: %v", err)
			return nil
		}

		caption := fmt.Sprintf("Speed (%%) / °C, starting at %d°C, automatic from %v°C", start, thresholds.ReturnToAuto)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}

func tableRows(thresholds *bands.Table) [][]string {
	rows := [][]string{
		{"-", thresholds.Describe(bands.BelowMinimum), thresholds.Default.String(), percentLabel(thresholds.Default)},
	}
	for idx, band := range thresholds.Bands {
		rows = append(rows, []string{
			fmt.Sprintf("%d", idx),
			thresholds.Describe(idx),
			band.Speed.String(),
			percentLabel(band.Speed),
		})
	}
	rows = append(rows, []string{"auto", fmt.Sprintf(">= %v°C", thresholds.ReturnToAuto), "-", "firmware"})
	return rows
}

func percentLabel(speed configuration.SpeedCode) string {
	percent, err := speed.Percent()
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%d%%", percent)
}

// graphValues computes the speed percentage for every full degree from just below
// the lowest band up to the return-to-automatic ceiling (exclusive)
func graphValues(thresholds *bands.Table) ([]float64, int, error) {
	start := int(math.Floor(thresholds.Lowest().Floor)) - graphMargin
	stop := int(math.Ceil(thresholds.ReturnToAuto))

	values := make([]float64, 0, stop-start)
	for temp := start; temp < stop; temp++ {
		speed := thresholds.SpeedOf(thresholds.Lookup(float64(temp)))
		percent, err := speed.Percent()
		if err != nil {
			return nil, 0, err
		}
		values = append(values, float64(percent))
	}
	return values, start, nil
}
