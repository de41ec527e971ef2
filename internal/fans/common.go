package fans

import (
	"context"

	"github.com/markusressel/ipmi2go/internal/configuration"
)

type ControlMode int

const (
	// ControlModeAutomatic gives control of the fan speed to the BMC firmware
	ControlModeAutomatic ControlMode = 0
	// ControlModeManual enables manual, fixed speed control via raw speed codes
	ControlModeManual ControlMode = 1
)

func (m ControlMode) String() string {
	switch m {
	case ControlModeAutomatic:
		return "automatic"
	case ControlModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

func (m ControlMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type Fan interface {
	GetId() string

	// SetAutomatic returns fan control to the firmware
	SetAutomatic(ctx context.Context) error

	// SetManual enables manual control and applies the given speed.
	// Manual mode is asserted on every call, even if it is already active.
	SetManual(ctx context.Context, speed configuration.SpeedCode) error
}
