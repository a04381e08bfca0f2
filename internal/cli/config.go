// Package cli loads command configuration from an optional .env file, flags and the
// environment, then validates it.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// ErrHelp is returned when the user asked for usage; callers exit cleanly.
var ErrHelp = errors.New("help requested")

// Load fills cfg from args. Values already present in the environment win over the
// .env file at envFile; a missing file is not an error.
func Load(cfg any, args []string, envFile string) ([]string, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	rest, err := flags.ParseArgs(cfg, args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return rest, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
