package statistics

import (
	"strings"
	"testing"

	"github.com/markusressel/ipmi2go/internal/controller"
	"github.com/markusressel/ipmi2go/internal/fans"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestControllerCollector_Collect(t *testing.T) {
	// GIVEN
	temperature := 45.0
	collector := newControllerCollector(func() []controller.Status {
		return []controller.Status{
			{
				ID:          "cpu",
				Mode:        fans.ControlModeManual,
				Band:        1,
				Temperature: &temperature,
				FailureRate: 0.25,
				Statistics: controller.Statistics{
					Cycles:         4,
					Transitions:    1,
					SensorFailures: 1,
				},
			},
		}
	})

	expected := `
# HELP ipmi2go_controller_mode Current fan control mode (0 = automatic, 1 = manual)
# TYPE ipmi2go_controller_mode gauge
ipmi2go_controller_mode{id="cpu"} 1
# HELP ipmi2go_controller_temperature Last successful temperature reading in degrees Celsius
# TYPE ipmi2go_controller_temperature gauge
ipmi2go_controller_temperature{id="cpu"} 45
# HELP ipmi2go_controller_sensor_failures_total Number of failed temperature readings
# TYPE ipmi2go_controller_sensor_failures_total counter
ipmi2go_controller_sensor_failures_total{id="cpu"} 1
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"ipmi2go_controller_mode",
		"ipmi2go_controller_temperature",
		"ipmi2go_controller_sensor_failures_total",
	)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 9, testutil.CollectAndCount(collector))
}

func TestControllerCollector_WithoutReading(t *testing.T) {
	// GIVEN
	collector := newControllerCollector(func() []controller.Status {
		return []controller.Status{{ID: "cpu", Mode: fans.ControlModeAutomatic, Band: -1}}
	})

	// WHEN
	count := testutil.CollectAndCount(collector, "ipmi2go_controller_temperature")

	// THEN
	assert.Equal(t, 0, count)
}
