package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig wraps failures from the env parser.
	ErrParsingConfig = errors.New("failed to parse config from environment")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("config destination cannot be nil")
)

// loadDotEnv loads .env once per process, before the first config parse.
// A missing file is not an error; explicit environment always wins.
var loadDotEnv sync.Once

// Load populates v from environment variables using `env` struct tags,
// loading a .env file first if one exists.
//
// Example:
//
//	type Config struct {
//		TrialDays int `env:"BILLING_TRIAL_DAYS" envDefault:"7"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	loadDotEnv.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration
// the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
