package sensors

import (
	"context"
	"errors"
)

// ErrSensorUnreadable is returned when the management tool ran, but its output contained no temperature
var ErrSensorUnreadable = errors.New("sensor output unreadable")

type Sensor interface {
	GetId() string

	// ReadTemperature returns the current temperature in degrees Celsius.
	// A failed read is always reported as an error, 0 is a valid reading.
	ReadTemperature(ctx context.Context) (float64, error)
}
