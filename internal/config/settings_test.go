package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfigFile, s.ConfigFile)
	assert.Equal(t, OnFailureStop, s.OnFailure)
	assert.False(t, s.NoColor)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("PROJ_CONFIG_FILE", "pipeline.yml")
	t.Setenv("PROJ_ON_FAILURE", "continue")
	t.Setenv("PROJ_NO_COLOR", "true")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "pipeline.yml", s.ConfigFile)
	assert.Equal(t, OnFailureContinue, s.OnFailure)
	assert.True(t, s.NoColor)
}

func TestLoadSettings_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("PROJ_ON_FAILURE", "retry")

	_, err := LoadSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_failure")
}
