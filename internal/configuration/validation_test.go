package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		Ipmi: IpmiConfig{
			Exec:      "/usr/bin/ipmitool",
			Interface: InterfaceLanPlus,
			Host:      "idrac.local",
			User:      "root",
			Password:  "calvin",
			Timeout:   30 * time.Second,
			Sensor:    "Temp",
			Raw: IpmiRawConfig{
				Automatic: "0x30 0x30 0x01 0x01",
				Manual:    "0x30 0x30 0x01 0x00",
				Speed:     "0x30 0x30 0x02 0xff %speed%",
			},
		},
		Controller: ControllerConfig{
			ID:                "cpu",
			PollingRate:       10 * time.Second,
			ReturnToAuto:      62,
			DefaultSpeed:      "0x10",
			FailureWindowSize: 30,
			Thresholds: []ThresholdConfig{
				{Temp: 38, Speed: "0x14"},
				{Temp: 42, Speed: "0x1f"},
				{Temp: 48, Speed: "0x2a"},
				{Temp: 52, Speed: "0x46"},
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateUnsupportedInterface(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Ipmi.Interface = "serial"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "ipmi: unsupported interface 'serial', use one of: open | imb | lan | lanplus")
}

func TestValidateRemoteInterfaceRequiresHost(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Ipmi.Host = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "ipmi: host is required for interface 'lanplus'")
}

func TestValidateLocalInterfaceDoesNotRequireHost(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Ipmi.Interface = InterfaceOpen
	config.Ipmi.Host = ""
	config.Ipmi.User = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateSpeedCommandWithoutPlaceholder(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Ipmi.Raw.Speed = "0x30 0x30 0x02 0xff"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "ipmi: raw speed command must contain the placeholder %speed%")
}

func TestValidateMissingThresholds(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.Thresholds = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "controller cpu: at least one threshold is required")
}

func TestValidateThresholdsNotIncreasing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.Thresholds[2].Temp = 42

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "controller cpu: thresholds must be strictly increasing, but 42°C follows 42°C")
}

func TestValidateThresholdWithoutSpeed(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.Thresholds[1].Speed = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "controller cpu: threshold 42°C is missing a speed")
}

func TestValidateReturnToAutoBelowHighestThreshold(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.ReturnToAuto = 52

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "controller cpu: returnToAuto (52°C) must be above the highest threshold (52°C)")
}

func TestValidateNonPositivePollingRate(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.PollingRate = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "controller cpu: pollingRate must be positive")
}

func TestValidateMissingDefaultSpeed(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.DefaultSpeed = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "controller cpu: missing defaultSpeed")
}
