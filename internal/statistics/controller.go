package statistics

import (
	"github.com/markusressel/ipmi2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

// ControllerCollector exports the latest published status of all controllers
type ControllerCollector struct {
	statuses func() []controller.Status

	temperature             *prometheus.Desc
	mode                    *prometheus.Desc
	band                    *prometheus.Desc
	failureRate             *prometheus.Desc
	cycles                  *prometheus.Desc
	transitions             *prometheus.Desc
	sensorFailures          *prometheus.Desc
	commandFailures         *prometheus.Desc
	forcedAutomaticFailures *prometheus.Desc
}

func NewControllerCollector() *ControllerCollector {
	return newControllerCollector(func() []controller.Status {
		var result []controller.Status
		for _, status := range controller.StatusMap.Items() {
			result = append(result, status)
		}
		return result
	})
}

func newControllerCollector(statuses func() []controller.Status) *ControllerCollector {
	desc := func(name string, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, name), help, []string{"id"}, nil)
	}

	return &ControllerCollector{
		statuses:                statuses,
		temperature:             desc("temperature", "Last successful temperature reading in degrees Celsius"),
		mode:                    desc("mode", "Current fan control mode (0 = automatic, 1 = manual)"),
		band:                    desc("band", "Index of the active threshold band, -1 below the lowest band or in automatic mode"),
		failureRate:             desc("failure_rate", "Share of failed control cycles within the failure window"),
		cycles:                  desc("cycles_total", "Number of control cycles"),
		transitions:             desc("transitions_total", "Number of applied mode and speed changes"),
		sensorFailures:          desc("sensor_failures_total", "Number of failed temperature readings"),
		commandFailures:         desc("command_failures_total", "Number of failed mode or speed commands"),
		forcedAutomaticFailures: desc("forced_automatic_failures_total", "Number of failed attempts to fall back to automatic mode"),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.mode
	ch <- collector.band
	ch <- collector.failureRate
	ch <- collector.cycles
	ch <- collector.transitions
	ch <- collector.sensorFailures
	ch <- collector.commandFailures
	ch <- collector.forcedAutomaticFailures
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, status := range collector.statuses() {
		id := status.ID
		if status.Temperature != nil {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, *status.Temperature, id)
		}
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, float64(status.Mode), id)
		ch <- prometheus.MustNewConstMetric(collector.band, prometheus.GaugeValue, float64(status.Band), id)
		ch <- prometheus.MustNewConstMetric(collector.failureRate, prometheus.GaugeValue, status.FailureRate, id)

		stats := status.Statistics
		ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(stats.Cycles), id)
		ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.Transitions), id)
		ch <- prometheus.MustNewConstMetric(collector.sensorFailures, prometheus.CounterValue, float64(stats.SensorFailures), id)
		ch <- prometheus.MustNewConstMetric(collector.commandFailures, prometheus.CounterValue, float64(stats.CommandFailures), id)
		ch <- prometheus.MustNewConstMetric(collector.forcedAutomaticFailures, prometheus.CounterValue, float64(stats.ForcedAutomaticFailures), id)
	}
}
