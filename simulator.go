package papertrade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SimulatorConfig holds the parameters of a Simulator.
type SimulatorConfig struct {
	Catalog         []Instrument  // seed instruments, in display order
	InitialCash     Money         // starting cash balance
	Seed            uint64        // random seed, 0 for a random one
	TickInterval    time.Duration // market tick period (default: 2s)
	Spread          float64       // width of a price move (default: 10)
	Floor           float64       // lowest price (default: 0.01)
	RefreshInterval time.Duration // valuation refresh period (default: 2s)
}

// DefaultSimulatorConfig returns the seed catalog with 10000 USD of cash.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Catalog:         DefaultCatalog(DefaultCurrency),
		InitialCash:     M(10000, DefaultCurrency),
		TickInterval:    DefaultTickInterval,
		Spread:          DefaultSpread,
		Floor:           DefaultFloor,
		RefreshInterval: DefaultRefreshInterval,
	}
}

// Simulator wires a Market, a Ledger and a Valuator together and exposes the
// trade entry points by symbol.
type Simulator struct {
	cfg      SimulatorConfig
	market   *Market
	ledger   *Ledger
	valuator *Valuator
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan error
}

// NewSimulator creates a simulator. A nil notifier discards messages.
// Pass a nil rng to seed from cfg.Seed.
func NewSimulator(cfg SimulatorConfig, notifier Notifier, logger zerolog.Logger, rng Rand) *Simulator {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	opts := []MarketOption{WithRand(rng), WithMarketLogger(logger.With().Str("component", "market").Logger())}
	if cfg.TickInterval > 0 {
		opts = append(opts, WithTickInterval(cfg.TickInterval))
	}
	if cfg.Spread > 0 {
		opts = append(opts, WithSpread(cfg.Spread))
	}
	if cfg.Floor > 0 {
		opts = append(opts, WithFloor(cfg.Floor))
	}
	market := NewMarket(cfg.Catalog, opts...)

	ledger := NewLedger(cfg.InitialCash, notifier, WithLedgerLogger(logger.With().Str("component", "ledger").Logger()))

	vopts := []ValuatorOption{WithValuatorLogger(logger.With().Str("component", "valuation").Logger())}
	if cfg.RefreshInterval > 0 {
		vopts = append(vopts, WithRefreshInterval(cfg.RefreshInterval))
	}
	valuator := NewValuator(ledger, market, vopts...)

	return &Simulator{
		cfg:      cfg,
		market:   market,
		ledger:   ledger,
		valuator: valuator,
		logger:   logger,
	}
}

func (s *Simulator) Market() *Market { return s.market }
func (s *Simulator) Ledger() *Ledger { return s.ledger }

// Buy buys qty shares of symbol at its current market price.
func (s *Simulator) Buy(symbol string, qty Quantity) (Trade, error) {
	inst, ok := s.market.Lookup(symbol)
	if !ok {
		err := fmt.Errorf("buy %s: %w", symbol, ErrUnknownSymbol)
		s.ledger.Reject(err)
		return Trade{}, err
	}
	return s.ledger.Buy(inst, qty)
}

// Sell sells qty shares of the holding in symbol. Selling a symbol that is not
// held fails with ErrInsufficientShares.
func (s *Simulator) Sell(symbol string, qty Quantity) (Trade, error) {
	h, ok := s.ledger.Holding(symbol)
	if !ok {
		h = Holding{Symbol: symbol}
	}
	return s.ledger.Sell(h, qty)
}

// Tick advances the market by one tick.
func (s *Simulator) Tick() []Instrument { return s.market.Tick() }

// Refresh runs one valuation pass.
func (s *Simulator) Refresh() []Holding { return s.valuator.Refresh() }

// Run runs the market feed and the valuation refresh until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.market.Run(ctx) })
	g.Go(func() error { return s.valuator.Run(ctx) })
	return g.Wait()
}

// Start runs the simulator in the background until Stop is called or ctx is
// cancelled.
func (s *Simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.New("simulator already started")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan error, 1)
	go func(done chan<- error) { done <- s.Run(ctx) }(s.done)

	s.logger.Info().
		Dur("tick_interval", s.market.interval).
		Dur("refresh_interval", s.valuator.interval).
		Msg("simulator started")
	return nil
}

// Stop cancels a started simulator and waits for it to finish, or for ctx.
// Stopping a simulator that is not running is a no-op.
func (s *Simulator) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case err := <-done:
		s.logger.Info().Msg("simulator stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends every stream of the simulator.
func (s *Simulator) Close() {
	s.market.Updates().Close()
	s.ledger.Close()
}

// State is a point in time view of the whole simulation.
type State struct {
	Ticks       int          `json:"ticks"`
	Instruments []Instrument `json:"instruments"`
	Cash        Money        `json:"cash"`
	Holdings    []Holding    `json:"holdings"`
	Summary     Summary      `json:"summary"`
	Trades      []Trade      `json:"trades"`
}

// State returns the current state of the simulation.
func (s *Simulator) State() State {
	account := s.ledger.Account()
	holdings := account.Holdings
	if holdings == nil {
		holdings = []Holding{}
	}
	trades := s.ledger.Trades()
	if trades == nil {
		trades = []Trade{}
	}
	return State{
		Ticks:       s.market.Ticks(),
		Instruments: s.market.Instruments(),
		Cash:        account.Cash,
		Holdings:    holdings,
		Summary:     NewSummary(account),
		Trades:      trades,
	}
}
