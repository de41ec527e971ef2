package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/ipmi2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := validateIpmi(&config.Ipmi); err != nil {
		return err
	}
	if err := validateController(&config.Controller); err != nil {
		return err
	}

	// the config file controls which executable and arguments are run as root
	if len(path) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func validateIpmi(config *IpmiConfig) error {
	if len(config.Exec) <= 0 {
		return errors.New("ipmi: missing path to ipmitool executable")
	}

	if !slices.Contains(SupportedInterfaces, config.Interface) {
		return fmt.Errorf("ipmi: unsupported interface '%s', use one of: %s", config.Interface, strings.Join(SupportedInterfaces, " | "))
	}

	if config.IsRemote() {
		if len(config.Host) <= 0 {
			return fmt.Errorf("ipmi: host is required for interface '%s'", config.Interface)
		}
		if len(config.User) <= 0 {
			return fmt.Errorf("ipmi: user is required for interface '%s'", config.Interface)
		}
	}

	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("ipmi: invalid port %d", config.Port)
	}

	if config.Timeout < 0 {
		return errors.New("ipmi: timeout must not be negative")
	}

	if len(strings.TrimSpace(config.Sensor)) <= 0 {
		return errors.New("ipmi: missing sensor name")
	}

	if len(strings.TrimSpace(config.Raw.Automatic)) <= 0 {
		return errors.New("ipmi: missing raw command for automatic mode")
	}
	if len(strings.TrimSpace(config.Raw.Manual)) <= 0 {
		return errors.New("ipmi: missing raw command for manual mode")
	}
	if !strings.Contains(config.Raw.Speed, SpeedPlaceholder) {
		return fmt.Errorf("ipmi: raw speed command must contain the placeholder %s", SpeedPlaceholder)
	}

	return nil
}

func validateController(config *ControllerConfig) error {
	if len(config.ID) <= 0 {
		return errors.New("controller: missing id")
	}

	if config.PollingRate <= 0 {
		return fmt.Errorf("controller %s: pollingRate must be positive", config.ID)
	}

	if config.FailureWindowSize <= 0 {
		return fmt.Errorf("controller %s: failureWindowSize must be positive", config.ID)
	}

	if len(config.DefaultSpeed) <= 0 {
		return fmt.Errorf("controller %s: missing defaultSpeed", config.ID)
	}

	if len(config.Thresholds) <= 0 {
		return fmt.Errorf("controller %s: at least one threshold is required", config.ID)
	}

	for idx, threshold := range config.Thresholds {
		if len(threshold.Speed) <= 0 {
			return fmt.Errorf("controller %s: threshold %v°C is missing a speed", config.ID, threshold.Temp)
		}
		if idx > 0 && threshold.Temp <= config.Thresholds[idx-1].Temp {
			return fmt.Errorf("controller %s: thresholds must be strictly increasing, but %v°C follows %v°C", config.ID, threshold.Temp, config.Thresholds[idx-1].Temp)
		}
	}

	highest := config.Thresholds[len(config.Thresholds)-1]
	if config.ReturnToAuto <= highest.Temp {
		return fmt.Errorf("controller %s: returnToAuto (%v°C) must be above the highest threshold (%v°C)", config.ID, config.ReturnToAuto, highest.Temp)
	}

	return nil
}
