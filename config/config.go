// Package config loads the simulator configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/etnz/papertrade"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration of a simulation.
type Config struct {
	Currency    string          `yaml:"currency"`
	InitialCash *float64        `yaml:"initial_cash"` // nil means DefaultInitialCash
	Seed        uint64          `yaml:"seed"`
	Market      MarketConfig    `yaml:"market"`
	Valuation   ValuationConfig `yaml:"valuation"`
	Log         LogConfig       `yaml:"log"`
}

// MarketConfig configures the price feed.
type MarketConfig struct {
	TickInterval time.Duration      `yaml:"tick_interval"`
	Spread       float64            `yaml:"spread"`
	Floor        float64            `yaml:"floor"`
	Instruments  []InstrumentConfig `yaml:"instruments"`
}

// InstrumentConfig is one entry of the instrument catalog.
type InstrumentConfig struct {
	Symbol string  `yaml:"symbol"`
	Name   string  `yaml:"name"`
	Price  float64 `yaml:"price"`
}

// ValuationConfig configures the valuation refresh.
type ValuationConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Catalog returns the configured instruments.
func (c *Config) Catalog() []papertrade.Instrument {
	catalog := make([]papertrade.Instrument, len(c.Market.Instruments))
	for i, inst := range c.Market.Instruments {
		catalog[i] = papertrade.NewInstrument(inst.Symbol, inst.Name, papertrade.M(inst.Price, c.Currency))
	}
	return catalog
}

// initialCash returns the configured cash, explicit zero included.
func (c *Config) initialCash() float64 {
	if c.InitialCash == nil {
		return DefaultInitialCash
	}
	return *c.InitialCash
}

// SimulatorConfig converts c into the parameters of a papertrade.Simulator.
func (c *Config) SimulatorConfig() papertrade.SimulatorConfig {
	return papertrade.SimulatorConfig{
		Catalog:         c.Catalog(),
		InitialCash:     papertrade.M(c.initialCash(), c.Currency),
		Seed:            c.Seed,
		TickInterval:    c.Market.TickInterval,
		Spread:          c.Market.Spread,
		Floor:           c.Market.Floor,
		RefreshInterval: c.Valuation.Interval,
	}
}
