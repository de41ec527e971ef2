package controller

import (
	"math"

	"github.com/markusressel/ipmi2go/internal/bands"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/fans"
)

// noReading is the "previous temperature" before the first sample and after a forced fallback.
// It is lower than every possible reading, so the next sample always crosses a band.
var noReading = math.Inf(-1)

// State is owned and mutated exclusively by the control loop
type State struct {
	Mode fans.ControlMode
	// LastTemperature is the previous sample, or -Inf if there is none
	LastTemperature float64
	// Band is the band index last applied in manual mode, or bands.BelowMinimum
	Band int
}

func NewState() State {
	return State{
		Mode:            fans.ControlModeAutomatic,
		LastTemperature: noReading,
		Band:            bands.BelowMinimum,
	}
}

// HasReading indicates whether LastTemperature holds an actual sample
func (s State) HasReading() bool {
	return !math.IsInf(s.LastTemperature, -1)
}

type Action int

const (
	ActionNone Action = iota
	ActionAutomatic
	ActionManual
)

func (a Action) String() string {
	switch a {
	case ActionAutomatic:
		return "automatic"
	case ActionManual:
		return "manual"
	default:
		return "none"
	}
}

type Decision struct {
	Action Action
	// Band and Speed are only set for ActionManual
	Band  int
	Speed configuration.SpeedCode
}

// Decide evaluates a new temperature sample against the threshold table.
// At most one rule fires, in this order:
//  1. unchanged temperature: nothing to do
//  2. at or above the return-to-automatic ceiling: give control back to the firmware,
//     unless it is already known to be in control
//  3. upward crossing of a band floor, highest band first
//  4. below the lowest band: default speed, once per crossing
func Decide(table *bands.Table, state State, temperature float64) Decision {
	if temperature == state.LastTemperature {
		return Decision{Action: ActionNone}
	}

	if temperature >= table.ReturnToAuto {
		// without a reading the actual BMC mode is unknown, e.g. after a restart
		if state.Mode == fans.ControlModeManual || !state.HasReading() {
			return Decision{Action: ActionAutomatic}
		}
		return Decision{Action: ActionNone}
	}

	// band crossings are always re-armed while the firmware is in control
	previous := state.LastTemperature
	if state.Mode != fans.ControlModeManual {
		previous = noReading
	}

	for i := len(table.Bands) - 1; i >= 0; i-- {
		floor := table.Bands[i].Floor
		if temperature >= floor && previous < floor {
			return Decision{
				Action: ActionManual,
				Band:   i,
				Speed:  table.Bands[i].Speed,
			}
		}
	}

	if temperature < table.Lowest().Floor {
		alreadyApplied := state.Mode == fans.ControlModeManual &&
			state.Band == bands.BelowMinimum &&
			state.HasReading()
		if !alreadyApplied {
			return Decision{
				Action: ActionManual,
				Band:   bands.BelowMinimum,
				Speed:  table.Default,
			}
		}
	}

	return Decision{Action: ActionNone}
}
