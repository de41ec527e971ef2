package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/ipmi2go/internal/bands"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/fans"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/markusressel/ipmi2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// ErrCommandFailed is returned when a mode or speed command could not be applied
var ErrCommandFailed = errors.New("fan command failed")

// restoreTimeout limits how long shutdown waits for the BMC to accept automatic mode
const restoreTimeout = 30 * time.Second

var (
	// StatusMap holds the latest Status of every running controller, keyed by controller id
	StatusMap = cmap.New[Status]()
)

type FanController interface {
	// Run executes control cycles until ctx is cancelled
	Run(ctx context.Context) error
	// RunCycle reads one sample and applies the resulting decision.
	// Any returned error has already been handled by falling back to automatic mode.
	RunCycle(ctx context.Context) error

	GetId() string
	GetState() State
	GetStatistics() Statistics
}

type Statistics struct {
	Cycles                  int `json:"cycles"`
	Transitions             int `json:"transitions"`
	SensorFailures          int `json:"sensorFailures"`
	CommandFailures         int `json:"commandFailures"`
	ForcedAutomaticFailures int `json:"forcedAutomaticFailures"`
}

// ThresholdController switches the fans between automatic control and
// fixed manual speeds based on a bands.Table
type ThresholdController struct {
	id          string
	sensor      sensors.Sensor
	fan         fans.Fan
	table       *bands.Table
	pollingRate time.Duration
	notify      bool

	state       State
	lastReading *float64
	lastUpdate  time.Time
	statistics  Statistics
	// 1 for every failed cycle, 0 otherwise
	failureWindow *rolling.PointPolicy
}

func NewThresholdController(
	config configuration.ControllerConfig,
	sensor sensors.Sensor,
	fan fans.Fan,
	table *bands.Table,
) *ThresholdController {
	windowSize := config.FailureWindowSize
	if windowSize <= 0 {
		windowSize = 1
	}
	failureWindow := util.CreateRollingWindow(windowSize)
	util.FillWindow(failureWindow, windowSize, 0)

	return &ThresholdController{
		id:            config.ID,
		sensor:        sensor,
		fan:           fan,
		table:         table,
		pollingRate:   config.PollingRate,
		notify:        config.Notify,
		state:         NewState(),
		failureWindow: failureWindow,
	}
}

func (c *ThresholdController) GetId() string {
	return c.id
}

func (c *ThresholdController) GetState() State {
	return c.state
}

func (c *ThresholdController) GetStatistics() Statistics {
	return c.statistics
}

func (c *ThresholdController) Run(ctx context.Context) error {
	ui.Info("Starting fan control for '%s' - Interval of %s", c.id, c.pollingRate)
	c.publish()

	for {
		_ = c.RunCycle(ctx)

		timer := time.NewTimer(c.pollingRate)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.restoreAutomatic()
			return nil
		case <-timer.C:
		}
	}
}

func (c *ThresholdController) RunCycle(ctx context.Context) (err error) {
	c.statistics.Cycles++
	defer func() {
		c.recordCycle(err != nil)
	}()

	temperature, err := c.sensor.ReadTemperature(ctx)
	if err != nil {
		c.statistics.SensorFailures++
		ui.Error("Cannot get temperature of sensor '%s': %v", c.sensor.GetId(), err)
		c.forceAutomatic(ctx)
		return err
	}
	c.lastReading = &temperature

	decision := Decide(c.table, c.state, temperature)
	previous := c.state.LastTemperature

	switch decision.Action {
	case ActionAutomatic:
		if err := c.fan.SetAutomatic(ctx); err != nil {
			return c.handleCommandFailure(ctx, err)
		}
		c.statistics.Transitions++
		ui.Info("Temperature %.1f°C reached return-to-automatic threshold of %.1f°C", temperature, c.table.ReturnToAuto)
		ui.Info("Switched fan control of '%s' to automatic", c.fan.GetId())
		c.state = State{
			Mode:            fans.ControlModeAutomatic,
			LastTemperature: temperature,
			Band:            bands.BelowMinimum,
		}
	case ActionManual:
		if err := c.fan.SetManual(ctx, decision.Speed); err != nil {
			return c.handleCommandFailure(ctx, err)
		}
		c.statistics.Transitions++
		ui.Info("Detected threshold change from %s to %.1f°C", formatTemperature(previous), temperature)
		ui.Info("Set fan speed of '%s' to %s (%s)", c.fan.GetId(), decision.Speed, c.table.Describe(decision.Band))
		c.state = State{
			Mode:            fans.ControlModeManual,
			LastTemperature: temperature,
			Band:            decision.Band,
		}
	default:
		ui.Debug("No threshold change for '%s' at %.1f°C", c.id, temperature)
		c.state.LastTemperature = temperature
	}

	return nil
}

func (c *ThresholdController) handleCommandFailure(ctx context.Context, cause error) error {
	c.statistics.CommandFailures++
	err := fmt.Errorf("%w: %v", ErrCommandFailed, cause)
	ui.Error("Setting fan speed failed: %v", err)
	c.forceAutomatic(ctx)
	return err
}

// forceAutomatic returns fan control to the firmware after a failure.
// If that fails too the hardware might still be in manual mode, so the state
// stays manual and the next cycle re-evaluates from scratch.
func (c *ThresholdController) forceAutomatic(ctx context.Context) {
	err := c.fan.SetAutomatic(ctx)
	if err != nil {
		c.statistics.ForcedAutomaticFailures++
		if c.notify {
			ui.ErrorAndNotify("Fan Control Failure", "Unable to return fans of '%s' to automatic control: %v", c.fan.GetId(), err)
		} else {
			ui.Error("Unable to return fans of '%s' to automatic control: %v", c.fan.GetId(), err)
		}
		c.state = State{
			Mode:            fans.ControlModeManual,
			LastTemperature: noReading,
			Band:            c.state.Band,
		}
		return
	}

	ui.Warning("Forced fan control of '%s' to automatic", c.fan.GetId())
	c.state = State{
		Mode:            fans.ControlModeAutomatic,
		LastTemperature: noReading,
		Band:            bands.BelowMinimum,
	}
}

// restoreAutomatic gives control back to the firmware when the controller stops
func (c *ThresholdController) restoreAutomatic() {
	if c.state.Mode != fans.ControlModeManual {
		return
	}

	ui.Info("Restoring automatic fan control for '%s'...", c.fan.GetId())
	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	defer cancel()

	err := c.fan.SetAutomatic(ctx)
	if err != nil {
		if c.notify {
			ui.WarningAndNotify("Fan Control Failure", "Unable to restore automatic fan control of '%s', make sure the fans are running! (%v)", c.fan.GetId(), err)
		} else {
			ui.Warning("Unable to restore automatic fan control of '%s', make sure the fans are running! (%v)", c.fan.GetId(), err)
		}
		return
	}
	c.state = State{
		Mode:            fans.ControlModeAutomatic,
		LastTemperature: noReading,
		Band:            bands.BelowMinimum,
	}
	c.publish()
}

func (c *ThresholdController) recordCycle(failed bool) {
	value := 0.0
	if failed {
		value = 1.0
	}
	c.failureWindow.Append(value)
	c.lastUpdate = time.Now()
	c.publish()
}

func formatTemperature(value float64) string {
	if value == noReading {
		return "unknown"
	}
	return fmt.Sprintf("%.1f°C", value)
}
