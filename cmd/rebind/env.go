package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envDefaults are flag defaults taken from the environment. Flags given on
// the command line still win.
type envDefaults struct {
	Bindings  string `env:"REBIND_BINDINGS" envDefault:"bindings.toml"`
	Backend   string `env:"REBIND_BACKEND" envDefault:"terminal"`
	Platform  string `env:"REBIND_PLATFORM"`
	Script    string `env:"REBIND_SCRIPT"`
	LogLevel  string `env:"REBIND_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"REBIND_LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"REBIND_LOG_FILE"`
	NoWatch   bool   `env:"REBIND_NO_WATCH"`
}

func loadEnvDefaults() (envDefaults, error) {
	var d envDefaults
	if err := env.Parse(&d); err != nil {
		return envDefaults{}, fmt.Errorf("parse env: %w", err)
	}
	return d, nil
}
