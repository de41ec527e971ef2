package ipmi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/markusressel/ipmi2go/internal/util"
)

// ErrToolInvocationFailed is returned when ipmitool could not be run or exited with an error
var ErrToolInvocationFailed = errors.New("ipmitool invocation failed")

// Client is the out-of-band management interface of the BMC
type Client interface {
	// SensorReading returns the raw output of "ipmitool sensor reading <sensor>"
	SensorReading(ctx context.Context, sensor string) (string, error)
	// Raw sends the given bytes using "ipmitool raw"
	Raw(ctx context.Context, data []string) (string, error)
}

// CommandRunner executes a program with an argument list and returns its stdout
type CommandRunner func(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error)

type client struct {
	config configuration.IpmiConfig
	run    CommandRunner
}

func NewClient(config configuration.IpmiConfig) Client {
	return NewClientWithRunner(config, util.SafeCmdExecution)
}

func NewClientWithRunner(config configuration.IpmiConfig, runner CommandRunner) Client {
	return &client{
		config: config,
		run:    runner,
	}
}

func (c *client) SensorReading(ctx context.Context, sensor string) (string, error) {
	return c.invoke(ctx, "sensor", "reading", sensor)
}

func (c *client) Raw(ctx context.Context, data []string) (string, error) {
	return c.invoke(ctx, append([]string{"raw"}, data...)...)
}

func (c *client) invoke(ctx context.Context, subcommand ...string) (string, error) {
	args := append(c.connectionArgs(), subcommand...)
	ui.Debug("Running %s %v", c.config.Exec, subcommand)

	output, err := c.run(ctx, c.config.Exec, args, c.config.Timeout)
	if err != nil {
		return "", fmt.Errorf("%w: %v: %v", ErrToolInvocationFailed, subcommand, err)
	}
	return output, nil
}

// connectionArgs builds the ipmitool arguments selecting interface and target BMC
func (c *client) connectionArgs() []string {
	args := []string{"-I", c.config.Interface}
	if !c.config.IsRemote() {
		return args
	}

	args = append(args, "-H", c.config.Host)
	if c.config.Port > 0 {
		args = append(args, "-p", strconv.Itoa(c.config.Port))
	}
	args = append(args, "-U", c.config.User)
	if len(c.config.Password) > 0 {
		args = append(args, "-P", c.config.Password)
	}
	return args
}
