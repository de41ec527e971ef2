package bands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/markusressel/ipmi2go/internal/configuration"
)

// BelowMinimum is the band index used for temperatures below the lowest floor
const BelowMinimum = -1

// Band maps every temperature at or above Floor (up to the next band) to a fixed fan speed
type Band struct {
	Floor float64                 `json:"floor"`
	Speed configuration.SpeedCode `json:"speed"`
}

// Table is the immutable, ordered set of temperature bands of a controller
type Table struct {
	// Bands sorted by strictly increasing Floor
	Bands []Band `json:"bands"`
	// Default speed used below the lowest band
	Default configuration.SpeedCode `json:"default"`
	// ReturnToAuto is the ceiling at or above which the firmware takes over again
	ReturnToAuto float64 `json:"returnToAuto"`
}

func NewTable(config configuration.ControllerConfig) (*Table, error) {
	if len(config.Thresholds) <= 0 {
		return nil, errors.New("threshold table must contain at least one band")
	}
	if len(config.DefaultSpeed) <= 0 {
		return nil, errors.New("threshold table is missing a default speed")
	}

	bands := make([]Band, 0, len(config.Thresholds))
	for _, threshold := range config.Thresholds {
		if len(threshold.Speed) <= 0 {
			return nil, fmt.Errorf("band %v°C is missing a speed", threshold.Temp)
		}
		bands = append(bands, Band{
			Floor: threshold.Temp,
			Speed: threshold.Speed,
		})
	}

	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].Floor < bands[j].Floor
	})
	for i := 1; i < len(bands); i++ {
		if bands[i].Floor <= bands[i-1].Floor {
			return nil, fmt.Errorf("duplicate band floor %v°C", bands[i].Floor)
		}
	}

	table := &Table{
		Bands:        bands,
		Default:      config.DefaultSpeed,
		ReturnToAuto: config.ReturnToAuto,
	}
	if highest := table.Highest(); table.ReturnToAuto <= highest.Floor {
		return nil, fmt.Errorf("return-to-automatic threshold %v°C must be above the highest band %v°C", table.ReturnToAuto, highest.Floor)
	}
	return table, nil
}

func (t *Table) Lowest() Band {
	return t.Bands[0]
}

func (t *Table) Highest() Band {
	return t.Bands[len(t.Bands)-1]
}

// Lookup returns the index of the highest band whose floor is <= temperature,
// or BelowMinimum.
func (t *Table) Lookup(temperature float64) int {
	for i := len(t.Bands) - 1; i >= 0; i-- {
		if temperature >= t.Bands[i].Floor {
			return i
		}
	}
	return BelowMinimum
}

// SpeedOf returns the speed code of the given band index
func (t *Table) SpeedOf(band int) configuration.SpeedCode {
	if band == BelowMinimum || band < 0 || band >= len(t.Bands) {
		return t.Default
	}
	return t.Bands[band].Speed
}

// Describe returns a human readable label for the given band index
func (t *Table) Describe(band int) string {
	if band == BelowMinimum || band < 0 || band >= len(t.Bands) {
		return fmt.Sprintf("below %v°C", t.Lowest().Floor)
	}
	return fmt.Sprintf(">= %v°C", t.Bands[band].Floor)
}
