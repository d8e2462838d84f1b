package papertrade

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRefreshInterval is the default period of the valuation refresh.
const DefaultRefreshInterval = 2 * time.Second

// Valuator periodically re-prices the holdings of a Ledger.
//
// Its timer is independent from the Market's: between a market tick and the
// next refresh, holdings are valued at the previous prices.
type Valuator struct {
	ledger   *Ledger
	prices   PriceSource
	interval time.Duration
	logger   zerolog.Logger
}

// ValuatorOption configures a Valuator.
type ValuatorOption func(*Valuator)

// WithRefreshInterval sets the period of Run.
func WithRefreshInterval(d time.Duration) ValuatorOption {
	return func(v *Valuator) { v.interval = d }
}

// WithValuatorLogger sets the logger.
func WithValuatorLogger(l zerolog.Logger) ValuatorOption {
	return func(v *Valuator) { v.logger = l }
}

// NewValuator creates a Valuator re-pricing ledger from prices.
func NewValuator(ledger *Ledger, prices PriceSource, opts ...ValuatorOption) *Valuator {
	v := &Valuator{
		ledger:   ledger,
		prices:   prices,
		interval: DefaultRefreshInterval,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Refresh re-prices every holding once and returns the new holdings.
func (v *Valuator) Refresh() []Holding {
	holdings := v.ledger.Revalue(v.prices)
	v.logger.Debug().Int("holdings", len(holdings)).Msg("holdings revalued")
	return holdings
}

// Run refreshes every interval until ctx is cancelled.
func (v *Valuator) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	v.logger.Info().Dur("interval", v.interval).Msg("valuation refresh started")
	for {
		select {
		case <-ctx.Done():
			v.logger.Info().Msg("valuation refresh stopped")
			return nil
		case <-ticker.C:
			v.Refresh()
		}
	}
}
