// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// the gene the spacer sequence should target
	Target string `mapstructure:"target"`

	// the ligand whose aptamer gets built into the designs
	Ligand string `mapstructure:"ligand"`

	// whether to build constructs without a spacer
	Spacerless bool `mapstructure:"spacerless"`

	// whether to log extra information to stderr
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the fallback value for every setting with Viper.
// Called before any flags are bound so the command line can override them.
func SetDefaults() {
	viper.SetDefault("target", "")
	viper.SetDefault("ligand", "")
	viper.SetDefault("spacerless", false)
	viper.SetDefault("verbose", false)
}

// New returns a new Config struct populated by Viper settings (either from
// the local settings.yaml) and/or command line arguments
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return c
}
