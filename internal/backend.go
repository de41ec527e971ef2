package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/ipmi2go/internal/api"
	"github.com/markusressel/ipmi2go/internal/bands"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/controller"
	"github.com/markusressel/ipmi2go/internal/fans"
	"github.com/markusressel/ipmi2go/internal/ipmi"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/statistics"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/markusressel/ipmi2go/internal/util"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	if config.Ipmi.Interface == configuration.InterfaceOpen && getProcessOwner() != "root" {
		ui.Fatal("The local 'open' interface requires root permissions, please run ipmi2go as root")
	}

	// built before the pid file is written, a fatal configuration error must not leave it behind
	table, fanController, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("%v", err)
	}

	releasePidFile, err := acquirePidFile(config.PidFile)
	if err != nil {
		ui.Fatal("%v", err)
	}
	defer releasePidFile()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			statistics.Register(statistics.NewControllerCollector())

			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Serving metrics on :%d/metrics", port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST api
			rest := api.CreateRestService(table)
			address := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Serving REST api on %s", address)
				if err := rest.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start REST api (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		// === fan controller
		g.Add(func() error {
			err := fanController.Run(ctx)
			ui.Info("Fan controller '%s' stopped.", fanController.GetId())
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		releasePidFile()
		os.Exit(1)
	}
	ui.Info("Done.")
}

// InitializeObjects creates the threshold table and the fan controller from the given configuration
func InitializeObjects(config configuration.Configuration) (*bands.Table, controller.FanController, error) {
	table, err := bands.NewTable(config.Controller)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to process threshold configuration of controller '%s': %w", config.Controller.ID, err)
	}

	client := ipmi.NewClient(config.Ipmi)
	sensor := sensors.NewIpmiSensor(config.Ipmi.Sensor, client)
	fan := fans.NewIpmiFan(config.Controller.ID, config.Ipmi.Raw, client)

	return table, controller.NewThresholdController(config.Controller, sensor, fan, table), nil
}

// acquirePidFile writes the pid file at path, refusing to do so while it names another live process.
// The returned release func removes the file again, an empty path disables the pid file.
func acquirePidFile(path string) (func(), error) {
	if len(path) <= 0 {
		return func() {}, nil
	}

	if pid, err := util.ReadPidFile(path); err == nil && pid != os.Getpid() && isProcessAlive(pid) {
		return nil, fmt.Errorf("another instance of ipmi2go is already running with pid %d (%s)", pid, path)
	}
	if err := util.WritePidFile(path); err != nil {
		return nil, fmt.Errorf("unable to write pid file %s: %w", path, err)
	}

	return func() {
		if err := util.RemovePidFile(path); err != nil {
			ui.Warning("Unable to remove pid file %s: %v", path, err)
		}
	}, nil
}

// isProcessAlive checks for a running process without sending an actual signal
func isProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
	}
	return strings.TrimSpace(string(stdout))
}
