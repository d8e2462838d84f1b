package papertrade

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/etnz/papertrade/stream"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Default market parameters.
const (
	DefaultTickInterval = 2 * time.Second
	DefaultSpread       = 10   // width of the uniform price move, centered on 0
	DefaultFloor        = 0.01 // lowest possible price
)

// Rand is the source of uniform numbers in [0, 1) driving price moves.
// *rand.Rand from math/rand/v2 implements it.
type Rand interface {
	Float64() float64
}

// NewRand returns a Rand seeded with seed, or randomly seeded when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// PriceSource returns the current price of a symbol, zero when unknown.
type PriceSource interface {
	Price(symbol string) Money
}

// Market is the price feed. It owns the instrument catalog and moves every
// price by a bounded random walk on each tick.
//
// Ticks are the only writer; each one swaps in a new slice so readers always
// get a complete, immutable snapshot.
type Market struct {
	mu          sync.RWMutex
	instruments []Instrument   // never mutated in place
	index       map[string]int // symbol to position, fixed at creation
	rng         Rand
	ticks       int

	currency string
	spread   decimal.Decimal
	floor    decimal.Decimal
	interval time.Duration
	logger   zerolog.Logger

	updates *stream.Subject[[]Instrument]
}

// MarketOption configures a Market.
type MarketOption func(*Market)

// WithRand sets the random source.
func WithRand(r Rand) MarketOption { return func(m *Market) { m.rng = r } }

// WithSpread sets the width of the uniform price move: moves are drawn in
// (-spread/2, +spread/2).
func WithSpread(spread float64) MarketOption {
	return func(m *Market) { m.spread = decimal.NewFromFloat(spread) }
}

// WithFloor sets the lowest price a tick can produce, rounded up to a cent.
func WithFloor(floor float64) MarketOption {
	return func(m *Market) { m.floor = decimal.NewFromFloat(floor).RoundUp(pricePlaces) }
}

// WithTickInterval sets the period of Run.
func WithTickInterval(d time.Duration) MarketOption { return func(m *Market) { m.interval = d } }

// WithMarketLogger sets the logger.
func WithMarketLogger(l zerolog.Logger) MarketOption { return func(m *Market) { m.logger = l } }

// NewMarket creates a market quoting catalog. Symbols are expected to be
// unique; the first occurrence wins otherwise.
func NewMarket(catalog []Instrument, opts ...MarketOption) *Market {
	m := &Market{
		index:    make(map[string]int, len(catalog)),
		spread:   decimal.NewFromInt(DefaultSpread),
		floor:    decimal.NewFromFloat(DefaultFloor),
		interval: DefaultTickInterval,
		logger:   zerolog.Nop(),
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = NewRand(0)
	}

	instruments := make([]Instrument, 0, len(catalog))
	for _, inst := range catalog {
		if _, dup := m.index[inst.Symbol]; dup {
			continue
		}
		m.index[inst.Symbol] = len(instruments)
		instruments = append(instruments, inst)
	}
	if len(instruments) > 0 {
		m.currency = instruments[0].Price.Currency()
	}
	m.instruments = instruments
	m.updates = stream.NewSubject(instruments)
	return m
}

// Instruments returns the current snapshot in catalog order.
// The returned slice must not be modified.
func (m *Market) Instruments() []Instrument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instruments
}

// Lookup returns the current state of symbol.
func (m *Market) Lookup(symbol string) (Instrument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[symbol]
	if !ok {
		return Instrument{}, false
	}
	return m.instruments[i], true
}

// Price returns the current price of symbol, or zero for an unknown symbol.
// Callers must treat zero as "unavailable".
func (m *Market) Price(symbol string) Money {
	inst, ok := m.Lookup(symbol)
	if !ok {
		return M(0, m.currency)
	}
	return inst.Price
}

// Symbols returns the catalog symbols in order.
func (m *Market) Symbols() []string {
	instruments := m.Instruments()
	symbols := make([]string, len(instruments))
	for i, inst := range instruments {
		symbols[i] = inst.Symbol
	}
	return symbols
}

// Ticks returns the number of ticks applied so far.
func (m *Market) Ticks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ticks
}

// Updates returns the stream of instrument snapshots.
func (m *Market) Updates() *stream.Subject[[]Instrument] { return m.updates }

// Tick moves every price once and publishes the new snapshot.
func (m *Market) Tick() []Instrument {
	m.mu.Lock()
	defer m.mu.Unlock()

	half := decimal.NewFromFloat(0.5)
	next := make([]Instrument, len(m.instruments))
	for i, inst := range m.instruments {
		delta := decimal.NewFromFloat(m.rng.Float64()).Sub(half).Mul(m.spread)
		// clamped after rounding so a published price is never below a cent
		price := Money{value: inst.Price.value.Add(delta).Round(pricePlaces), cur: inst.Price.cur}
		price = price.Max(Money{value: m.floor, cur: inst.Price.cur})
		next[i] = Instrument{
			Symbol: inst.Symbol,
			Name:   inst.Name,
			Price:  price,
			Change: Money{value: delta.Round(pricePlaces), cur: inst.Price.cur},
		}
	}
	m.instruments = next
	m.ticks++
	m.updates.Publish(next)

	m.logger.Debug().Int("tick", m.ticks).Int("instruments", len(next)).Msg("market tick")
	return next
}

// Run ticks every interval until ctx is cancelled.
func (m *Market) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info().Dur("interval", m.interval).Int("instruments", len(m.Instruments())).Msg("market feed started")
	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Int("ticks", m.Ticks()).Msg("market feed stopped")
			return nil
		case <-ticker.C:
			m.Tick()
		}
	}
}
