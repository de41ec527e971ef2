package configuration

import (
	"os"
	"strings"
	"time"

	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// PidFile is written on daemon start and removed on exit, empty disables it
	PidFile string `json:"pidFile"`

	Ipmi       IpmiConfig       `json:"ipmi"`
	Controller ControllerConfig `json:"controller"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("ipmi2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/ipmi2go/")
	}

	viper.SetEnvPrefix("ipmi2go")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("pidFile", "")

	viper.SetDefault("ipmi.exec", "/usr/bin/ipmitool")
	viper.SetDefault("ipmi.interface", InterfaceLanPlus)
	viper.SetDefault("ipmi.host", "")
	viper.SetDefault("ipmi.port", 0)
	viper.SetDefault("ipmi.user", "")
	viper.SetDefault("ipmi.password", "")
	viper.SetDefault("ipmi.timeout", 30*time.Second)
	viper.SetDefault("ipmi.sensor", "Temp")
	viper.SetDefault("ipmi.raw.automatic", "0x30 0x30 0x01 0x01")
	viper.SetDefault("ipmi.raw.manual", "0x30 0x30 0x01 0x00")
	viper.SetDefault("ipmi.raw.speed", "0x30 0x30 0x02 0xff "+SpeedPlaceholder)

	viper.SetDefault("controller.id", "cpu")
	viper.SetDefault("controller.pollingRate", 10*time.Second)
	viper.SetDefault("controller.returnToAuto", 62.0)
	viper.SetDefault("controller.defaultSpeed", "0x10")
	viper.SetDefault("controller.failureWindowSize", 30)
	viper.SetDefault("controller.notify", false)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(DecodeHooks()))
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}
}

// DecodeHooks returns all mapstructure hooks needed to decode a Configuration
func DecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		SpeedCodeHookFunc(),
	)
}
