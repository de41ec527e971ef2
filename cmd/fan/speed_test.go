package fan

import (
	"testing"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestParseSpeedArg(t *testing.T) {
	tests := []struct {
		arg      string
		expected configuration.SpeedCode
		wantErr  bool
	}{
		{arg: "0x14", expected: "0x14"},
		{arg: "0X2A", expected: "0x2a"},
		{arg: "20", expected: "0x14"},
		{arg: "0", expected: "0x00"},
		{arg: "255", expected: "0xff"},
		{arg: "256", wantErr: true},
		{arg: "-1", wantErr: true},
		{arg: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			// WHEN
			result, err := parseSpeedArg(tt.arg)

			// THEN
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
