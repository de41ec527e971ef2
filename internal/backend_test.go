package internal

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConfig() configuration.Configuration {
	return configuration.Configuration{
		Ipmi: configuration.IpmiConfig{
			Exec:      "/usr/bin/ipmitool",
			Interface: configuration.InterfaceLanPlus,
			Host:      "idrac.local",
			Sensor:    "Temp",
			Raw: configuration.IpmiRawConfig{
				Automatic: "0x30 0x30 0x01 0x01",
				Manual:    "0x30 0x30 0x01 0x00",
				Speed:     "0x30 0x30 0x02 0xff %speed%",
			},
		},
		Controller: configuration.ControllerConfig{
			ID:                "cpu",
			PollingRate:       10 * time.Second,
			ReturnToAuto:      62,
			DefaultSpeed:      "0x10",
			FailureWindowSize: 10,
			Thresholds: []configuration.ThresholdConfig{
				{Temp: 42, Speed: "0x1f"},
				{Temp: 38, Speed: "0x14"},
			},
		},
	}
}

func TestInitializeObjects(t *testing.T) {
	// GIVEN
	config := createConfig()

	// WHEN
	table, fanController, err := InitializeObjects(config)

	// THEN
	require.NoError(t, err)
	assert.Len(t, table.Bands, 2)
	assert.Equal(t, 38.0, table.Lowest().Floor)
	assert.Equal(t, "cpu", fanController.GetId())
	assert.False(t, fanController.GetState().HasReading())
}

func TestInitializeObjects_InvalidThresholds(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Controller.ReturnToAuto = 40

	// WHEN
	_, _, err := InitializeObjects(config)

	// THEN
	assert.ErrorContains(t, err, "controller 'cpu'")
}

func TestAcquirePidFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "run", "ipmi2go.pid")

	// WHEN
	release, err := acquirePidFile(path)

	// THEN
	require.NoError(t, err)
	pid, err := util.ReadPidFile(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	release()
	assert.NoFileExists(t, path)
}

func TestAcquirePidFile_Disabled(t *testing.T) {
	// WHEN
	release, err := acquirePidFile("")

	// THEN
	require.NoError(t, err)
	release()
}

func TestAcquirePidFile_StaleFileIsReplaced(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "ipmi2go.pid")
	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0644))

	// WHEN
	release, err := acquirePidFile(path)

	// THEN
	require.NoError(t, err)
	defer release()
	pid, err := util.ReadPidFile(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquirePidFile_OtherInstanceRunning(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "ipmi2go.pid")
	// pid 1 is always alive
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(1)), 0644))

	// WHEN
	_, err := acquirePidFile(path)

	// THEN
	assert.ErrorContains(t, err, "already running with pid 1")
}

func TestIsProcessAlive(t *testing.T) {
	assert.True(t, isProcessAlive(os.Getpid()))
	assert.False(t, isProcessAlive(0))
	assert.False(t, isProcessAlive(-1))
}
