package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides, so
// PROJ_CONFIG_FILE, PROJ_ON_FAILURE and PROJ_NO_COLOR are recognized.
const envPrefix = "PROJ"

// Settings holds tool-level settings that apply across projects, as
// opposed to the per-project [Project] configuration. They are loaded
// with Viper and can be overridden through PROJ_-prefixed environment
// variables.
type Settings struct {
	// ConfigFile is the project configuration file name to look for.
	// Default: "project.yml". Override with PROJ_CONFIG_FILE.
	ConfigFile string `mapstructure:"config_file"`

	// OnFailure is the failure policy used when neither the project
	// file nor the command line sets one. Default: "stop".
	// Override with PROJ_ON_FAILURE.
	OnFailure string `mapstructure:"on_failure"`

	// NoColor disables terminal styling. Default: false.
	// Override with PROJ_NO_COLOR.
	NoColor bool `mapstructure:"no_color"`
}

// LoadSettings loads [Settings] from defaults and environment variables.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetDefault("config_file", DefaultConfigFile)
	v.SetDefault("on_failure", OnFailureStop)
	v.SetDefault("no_color", false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys it has seen; bind them explicitly.
	for _, key := range []string{"config_file", "on_failure", "no_color"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	switch s.OnFailure {
	case OnFailureStop, OnFailureContinue:
	default:
		return nil, fmt.Errorf("unknown on_failure policy %q (expected %q or %q)",
			s.OnFailure, OnFailureStop, OnFailureContinue)
	}

	return &s, nil
}
