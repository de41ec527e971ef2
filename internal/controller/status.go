package controller

import (
	"time"

	"github.com/markusressel/ipmi2go/internal/bands"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/fans"
	"github.com/markusressel/ipmi2go/internal/util"
)

// Status is a read-only snapshot of a controller, safe to share with other goroutines
type Status struct {
	ID   string           `json:"id"`
	Mode fans.ControlMode `json:"mode"`
	// Band index, only meaningful in manual mode
	Band      int                     `json:"band"`
	BandLabel string                  `json:"bandLabel"`
	Speed     configuration.SpeedCode `json:"speed,omitempty"`
	// Temperature is the last successful reading
	Temperature *float64 `json:"temperature,omitempty"`
	// FailureRate is the share of failed cycles within the failure window
	FailureRate float64    `json:"failureRate"`
	Statistics  Statistics `json:"statistics"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GetStatus returns the last published status of the controller with the given id
func GetStatus(id string) (Status, bool) {
	return StatusMap.Get(id)
}

func (c *ThresholdController) snapshot() Status {
	status := Status{
		ID:          c.id,
		Mode:        c.state.Mode,
		Band:        c.state.Band,
		FailureRate: util.GetWindowAvg(c.failureWindow),
		Statistics:  c.statistics,
		UpdatedAt:   c.lastUpdate,
	}
	if c.lastReading != nil {
		temperature := *c.lastReading
		status.Temperature = &temperature
	}
	if c.state.Mode == fans.ControlModeManual {
		status.BandLabel = c.table.Describe(c.state.Band)
		status.Speed = c.table.SpeedOf(c.state.Band)
	} else {
		status.Band = bands.BelowMinimum
	}
	return status
}

func (c *ThresholdController) publish() {
	StatusMap.Set(c.id, c.snapshot())
}
