package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all values are usable by a simulator.
func (c *Config) Validate() error {
	if len(c.Currency) != 3 || strings.ToUpper(c.Currency) != c.Currency {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", c.Currency)
	}
	if c.InitialCash != nil && *c.InitialCash < 0 {
		return errors.New("initial_cash must be >= 0")
	}

	if c.Market.TickInterval <= 0 {
		return errors.New("market.tick_interval must be > 0")
	}
	if c.Market.Spread <= 0 {
		return errors.New("market.spread must be > 0")
	}
	if c.Market.Floor < 0.01 {
		return errors.New("market.floor must be >= 0.01")
	}
	if len(c.Market.Instruments) == 0 {
		return errors.New("market.instruments must not be empty")
	}
	seen := make(map[string]bool, len(c.Market.Instruments))
	for i, inst := range c.Market.Instruments {
		if err := inst.validate(fmt.Sprintf("market.instruments[%d]", i)); err != nil {
			return err
		}
		if seen[inst.Symbol] {
			return fmt.Errorf("market.instruments[%d].symbol %q is duplicated", i, inst.Symbol)
		}
		seen[inst.Symbol] = true
	}

	if c.Valuation.Interval <= 0 {
		return errors.New("valuation.interval must be > 0")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

func (inst *InstrumentConfig) validate(prefix string) error {
	if inst.Symbol == "" {
		return fmt.Errorf("%s.symbol is required", prefix)
	}
	if strings.ContainsAny(inst.Symbol, " \t") {
		return fmt.Errorf("%s.symbol %q must not contain spaces", prefix, inst.Symbol)
	}
	if inst.Price <= 0 {
		return fmt.Errorf("%s.price must be > 0", prefix)
	}
	return nil
}
