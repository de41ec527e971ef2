package sensors

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/markusressel/ipmi2go/internal/ipmi"
)

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// IpmiSensor reads a temperature sensor of the BMC
type IpmiSensor struct {
	Name   string      `json:"name"`
	Client ipmi.Client `json:"-"`
}

func NewIpmiSensor(name string, client ipmi.Client) *IpmiSensor {
	return &IpmiSensor{
		Name:   name,
		Client: client,
	}
}

func (sensor *IpmiSensor) GetId() string {
	return sensor.Name
}

func (sensor *IpmiSensor) ReadTemperature(ctx context.Context) (float64, error) {
	output, err := sensor.Client.SensorReading(ctx, sensor.Name)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.Name, err)
	}
	// the reading is prefixed with the sensor name, which may contain digits itself
	value := strings.TrimPrefix(strings.TrimSpace(output), sensor.Name)
	return ParseTemperature(value)
}

// ParseTemperature extracts the first integer or decimal number from the given tool output.
// For "<name> | <value>" lines only the value column is considered.
func ParseTemperature(output string) (float64, error) {
	value := output
	if idx := strings.Index(value, "|"); idx >= 0 {
		value = value[idx+1:]
	}

	match := numberPattern.FindString(value)
	if len(match) <= 0 {
		return 0, fmt.Errorf("%w: no numeric value in '%s'", ErrSensorUnreadable, output)
	}

	temperature, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSensorUnreadable, err)
	}
	return temperature, nil
}
