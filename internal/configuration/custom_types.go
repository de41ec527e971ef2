package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// SpeedCode is the opaque payload appended to the "set fan speed" raw command,
// usually a single hex byte like "0x14".
type SpeedCode string

func (s SpeedCode) String() string {
	return string(s)
}

// Args splits the speed code into separate ipmitool arguments
func (s SpeedCode) Args() []string {
	return strings.Fields(string(s))
}

// Percent interprets a single byte speed code as a fan duty cycle in percent.
// Dell BMCs use the byte value directly, so 0x14 is 20%.
func (s SpeedCode) Percent() (int, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(string(s)), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("speed code '%s' is not a single byte: %w", s, err)
	}
	return int(value), nil
}

// NewSpeedCode formats a numeric speed value as a hex byte speed code
func NewSpeedCode(value int) SpeedCode {
	return SpeedCode(fmt.Sprintf("0x%02x", value))
}

// SpeedCodeHookFunc returns a mapstructure decode hook for SpeedCode values.
// YAML parses unquoted "0x14" as the integer 20, so numeric values are
// converted back into their hex representation. Strings are kept as-is.
func SpeedCodeHookFunc() mapstructure.DecodeHookFuncType {
	speedCodeType := reflect.TypeOf(SpeedCode(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != speedCodeType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return SpeedCode(strings.TrimSpace(v)), nil
		case int:
			return speedCodeFromInt(int64(v))
		case int64:
			return speedCodeFromInt(v)
		case uint64:
			return speedCodeFromInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("speed code must be an integer, got %v", v)
			}
			return speedCodeFromInt(int64(v))
		}
		return data, nil
	}
}

func speedCodeFromInt(value int64) (SpeedCode, error) {
	if value < 0 || value > 0xff {
		return "", fmt.Errorf("speed code %d is out of range (0..255)", value)
	}
	return NewSpeedCode(int(value)), nil
}
