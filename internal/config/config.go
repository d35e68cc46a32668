package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"ARENA_DB_HOST"`
	Port     int    `yaml:"port"     env:"ARENA_DB_PORT"`
	User     string `yaml:"user"     env:"ARENA_DB_USER"`
	Password string `yaml:"password" env:"ARENA_DB_PASSWORD"`
	DBName   string `yaml:"dbname"   env:"ARENA_DB_NAME"`
	SSLMode  string `yaml:"sslmode"  env:"ARENA_DB_SSLMODE"`
	MaxConns int32  `yaml:"max_conns" env:"ARENA_DB_MAX_CONNS"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Battle holds session limits.
type Battle struct {
	// MaxTurns is the number of resolved actions before the turn limit.
	MaxTurns int32 `yaml:"max_turns" env:"ARENA_MAX_TURNS"`

	// DefaultSeed is used when a battle is requested without a seed.
	// Zero means a fresh random seed per battle.
	DefaultSeed int64 `yaml:"default_seed" env:"ARENA_DEFAULT_SEED"`
}

// Rates holds reward multipliers.
type Rates struct {
	Experience float64 `yaml:"experience" env:"ARENA_RATE_EXPERIENCE"`
}

// Simulation configures the balance simulator.
type Simulation struct {
	BattlesPerMatchup int   `yaml:"battles_per_matchup" env:"ARENA_SIM_BATTLES"`
	Workers           int   `yaml:"workers"             env:"ARENA_SIM_WORKERS"`
	Level             int32 `yaml:"level"               env:"ARENA_SIM_LEVEL"`
}

// Arena holds all configuration for the arena binaries.
type Arena struct {
	LogLevel string `yaml:"log_level" env:"ARENA_LOG_LEVEL"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	Battle     Battle     `yaml:"battle"`
	Rates      Rates      `yaml:"rates"`
	Simulation Simulation `yaml:"simulation"`
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arena",
			Password: "arena",
			DBName:   "arena",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Battle: Battle{
			MaxTurns: 500,
		},
		Rates: Rates{
			Experience: 1.0,
		},
		Simulation: Simulation{
			BattlesPerMatchup: 100,
			Workers:           8,
			Level:             10,
		},
	}
}

// LoadArena loads arena config from a YAML file and applies ARENA_*
// environment overrides on top. If the file doesn't exist, defaults are used.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
// Variables that are not set leave the target untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values the engine cannot run with.
func (a Arena) Validate() error {
	if a.Battle.MaxTurns <= 0 {
		return fmt.Errorf("battle.max_turns must be positive, got %d", a.Battle.MaxTurns)
	}
	if a.Rates.Experience <= 0 {
		return fmt.Errorf("rates.experience must be positive, got %v", a.Rates.Experience)
	}
	if a.Simulation.BattlesPerMatchup <= 0 {
		return fmt.Errorf("simulation.battles_per_matchup must be positive, got %d", a.Simulation.BattlesPerMatchup)
	}
	if a.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation.workers must be positive, got %d", a.Simulation.Workers)
	}
	if a.Simulation.Level < 1 {
		return fmt.Errorf("simulation.level must be positive, got %d", a.Simulation.Level)
	}
	return nil
}
