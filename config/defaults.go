package config

import "github.com/etnz/papertrade"

// Default values for optional configuration fields.
const (
	DefaultCurrency        = papertrade.DefaultCurrency
	DefaultInitialCash     = 10000
	DefaultTickInterval    = papertrade.DefaultTickInterval
	DefaultSpread          = papertrade.DefaultSpread
	DefaultFloor           = papertrade.DefaultFloor
	DefaultRefreshInterval = papertrade.DefaultRefreshInterval
	DefaultLogLevel        = "info"
)

// DefaultInstruments is the seed catalog.
func DefaultInstruments() []InstrumentConfig {
	return []InstrumentConfig{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 150},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 2800},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Price: 300},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 3300},
	}
}

func (c *Config) applyDefaults() {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.InitialCash == nil {
		cash := float64(DefaultInitialCash)
		c.InitialCash = &cash
	}

	// Market defaults
	if c.Market.TickInterval == 0 {
		c.Market.TickInterval = DefaultTickInterval
	}
	if c.Market.Spread == 0 {
		c.Market.Spread = DefaultSpread
	}
	if c.Market.Floor == 0 {
		c.Market.Floor = DefaultFloor
	}
	if len(c.Market.Instruments) == 0 {
		c.Market.Instruments = DefaultInstruments()
	}
	for i := range c.Market.Instruments {
		if c.Market.Instruments[i].Name == "" {
			c.Market.Instruments[i].Name = c.Market.Instruments[i].Symbol
		}
	}

	if c.Valuation.Interval == 0 {
		c.Valuation.Interval = DefaultRefreshInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
