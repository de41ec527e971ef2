package configuration

import "time"

type ControllerConfig struct {
	ID string `json:"id"`
	// Time interval between two control cycles
	PollingRate time.Duration `json:"pollingRate"`
	// Temperature at or above which manual control is abandoned
	ReturnToAuto float64 `json:"returnToAuto"`
	// Speed used below the lowest threshold
	DefaultSpeed SpeedCode         `json:"defaultSpeed"`
	Thresholds   []ThresholdConfig `json:"thresholds"`
	// Number of recent cycles considered for the failure rate
	FailureWindowSize int `json:"failureWindowSize"`
	// Send a desktop notification when the fans could not be returned to automatic control
	Notify bool `json:"notify"`
}

type ThresholdConfig struct {
	Temp  float64   `json:"temp"`
	Speed SpeedCode `json:"speed"`
}
