// Package cmd implements the ptrade command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/config"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "simulation")
	c.Register(&playCmd{}, "simulation")
	c.Register(&quotesCmd{}, "simulation")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file (defaults are used when empty)")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the configuration")

// loadConfig reads the optional .env file, then the configuration file, and
// applies the command line overrides.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadAndValidate(*configFile); err != nil {
			return nil, err
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newSimulator loads the configuration and builds a simulator reporting
// trades to the terminal.
func newSimulator() (*papertrade.Simulator, zerolog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := newLogger(cfg.Log.Level)
	sim := papertrade.NewSimulator(cfg.SimulatorConfig(), NewConsoleNotifier(stdout), logger, nil)
	logger.Debug().Str("config", *configFile).Uint64("seed", cfg.Seed).Msg("simulator ready")
	return sim, logger, nil
}
