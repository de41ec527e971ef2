package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderSettings_RedactsPassword(t *testing.T) {
	// GIVEN
	settings := map[string]interface{}{
		"ipmi": map[string]interface{}{
			"host":     "192.168.1.10",
			"password": "calvin",
		},
		"controller": map[string]interface{}{
			"id": "cpu",
		},
	}

	// WHEN
	out, err := renderSettings(settings)

	// THEN
	require.NoError(t, err)
	assert.NotContains(t, out, "calvin")

	var decoded map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, redacted, decoded["ipmi"]["password"])
	assert.Equal(t, "192.168.1.10", decoded["ipmi"]["host"])
	assert.Equal(t, "cpu", decoded["controller"]["id"])
}

func TestRenderSettings_EmptyPasswordStaysEmpty(t *testing.T) {
	// GIVEN
	settings := map[string]interface{}{
		"ipmi": map[string]interface{}{
			"interface": "open",
			"password":  "",
		},
	}

	// WHEN
	out, err := renderSettings(settings)

	// THEN
	require.NoError(t, err)
	assert.NotContains(t, out, redacted)
}
