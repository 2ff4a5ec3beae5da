// Package config reads process configuration from the environment. A .env
// file next to the binary is honored via godotenv's autoload.
package config

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"TASKDECK_DB" env-default:""`
	// LogPath is where the structured log goes; stdout belongs to the TUI.
	LogPath string `env:"TASKDECK_LOG" env-default:""`
	// LogLevel is a zerolog level string (trace, debug, info, warn, error).
	LogLevel string `env:"TASKDECK_LOG_LEVEL" env-default:"info"`
	// Language and Theme seed the state when nothing is persisted yet.
	Language string `env:"TASKDECK_LANGUAGE" env-default:"en"`
	Theme    string `env:"TASKDECK_THEME" env-default:"light"`
}

func Read() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
