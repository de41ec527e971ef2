package fans

import (
	"context"
	"fmt"
	"strings"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ipmi"
)

// IpmiFan controls all chassis fans of a server through "ipmitool raw" commands
type IpmiFan struct {
	ID     string                      `json:"id"`
	Config configuration.IpmiRawConfig `json:"config"`
	Client ipmi.Client                 `json:"-"`
}

func NewIpmiFan(id string, config configuration.IpmiRawConfig, client ipmi.Client) *IpmiFan {
	return &IpmiFan{
		ID:     id,
		Config: config,
		Client: client,
	}
}

func (fan *IpmiFan) GetId() string {
	return fan.ID
}

func (fan *IpmiFan) SetAutomatic(ctx context.Context) error {
	_, err := fan.Client.Raw(ctx, strings.Fields(fan.Config.Automatic))
	if err != nil {
		return fmt.Errorf("fan %s: unable to enable automatic mode: %w", fan.ID, err)
	}
	return nil
}

func (fan *IpmiFan) SetManual(ctx context.Context, speed configuration.SpeedCode) error {
	_, err := fan.Client.Raw(ctx, strings.Fields(fan.Config.Manual))
	if err != nil {
		return fmt.Errorf("fan %s: unable to enable manual mode: %w", fan.ID, err)
	}

	_, err = fan.Client.Raw(ctx, fan.speedArgs(speed))
	if err != nil {
		return fmt.Errorf("fan %s: unable to set speed %s: %w", fan.ID, speed, err)
	}
	return nil
}

// speedArgs replaces the placeholder in the configured speed command with the given speed code
func (fan *IpmiFan) speedArgs(speed configuration.SpeedCode) []string {
	var args []string
	for _, arg := range strings.Fields(fan.Config.Speed) {
		if arg == configuration.SpeedPlaceholder {
			args = append(args, speed.Args()...)
			continue
		}
		args = append(args, strings.ReplaceAll(arg, configuration.SpeedPlaceholder, speed.String()))
	}
	return args
}
