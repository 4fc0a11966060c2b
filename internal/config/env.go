package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// A .env file in the working directory, if present, is loaded first without
// overriding variables already set in the process environment.
//
// Returns a wrapped error if env.Parse fails (e.g. a required variable is
// missing or a value cannot be converted to the target type).
func parseEnv(cfg any) error {
	// Absence of a .env file is the normal production case.
	_ = godotenv.Load()

	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
