package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Sim holds the environment defaults of the scripted game runner.
// Command-line flags override them.
type Sim struct {
	GameID     string `env:"ARES_GAME_ID" envDefault:"game_1"`
	DataDir    string `env:"ARES_DATA_DIR" envDefault:"./data"`
	TuningPath string `env:"ARES_TUNING" envDefault:""`
	Players    int    `env:"ARES_PLAYERS" envDefault:"2"`
	Hazards    bool   `env:"ARES_HAZARDS" envDefault:"true"`
	DisableDB  bool   `env:"ARES_DISABLE_DB" envDefault:"false"`
}

type Replay struct {
	DataDir string `env:"ARES_DATA_DIR" envDefault:"./data"`
	GameID  string `env:"ARES_GAME_ID" envDefault:"game_1"`
}
