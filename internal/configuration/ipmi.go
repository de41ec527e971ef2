package configuration

import "time"

const (
	InterfaceOpen    = "open"
	InterfaceImb     = "imb"
	InterfaceLan     = "lan"
	InterfaceLanPlus = "lanplus"

	// SpeedPlaceholder is replaced with the speed code in IpmiRawConfig.Speed
	SpeedPlaceholder = "%speed%"
)

var SupportedInterfaces = []string{InterfaceOpen, InterfaceImb, InterfaceLan, InterfaceLanPlus}

type IpmiConfig struct {
	// Exec is the path to the ipmitool executable
	Exec      string `json:"exec"`
	Interface string `json:"interface"`
	Host      string `json:"host"`
	Port      int    `json:"port,omitempty"`
	User      string `json:"user"`
	Password  string `json:"-"`
	// Timeout for a single ipmitool invocation, 0 waits forever
	Timeout time.Duration `json:"timeout"`
	// Sensor is the name passed to "ipmitool sensor reading"
	Sensor string        `json:"sensor"`
	Raw    IpmiRawConfig `json:"raw"`
}

// IpmiRawConfig holds the vendor specific "ipmitool raw" byte strings
type IpmiRawConfig struct {
	Automatic string `json:"automatic"`
	Manual    string `json:"manual"`
	Speed     string `json:"speed"`
}

// IsRemote indicates whether connection parameters have to be passed to ipmitool
func (c IpmiConfig) IsRemote() bool {
	return c.Interface == InterfaceLan || c.Interface == InterfaceLanPlus
}
