package papertrade

import (
	"slices"
	"sync"
	"time"

	"github.com/etnz/papertrade/stream"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ledger owns the Account and executes trades against it.
//
// Buy, Sell and Revalue are serialized: none of them can observe or produce a
// partially updated Account. Every successful mutation publishes the new cash
// balance and holdings; every Buy or Sell emits exactly one Notifier signal,
// after the lock is released.
type Ledger struct {
	mu      sync.Mutex
	account Account
	trades  []Trade

	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time

	cash     *stream.Subject[Money]
	holdings *stream.Subject[[]Holding]
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithLedgerLogger sets the logger.
func WithLedgerLogger(l zerolog.Logger) LedgerOption { return func(g *Ledger) { g.logger = l } }

// WithClock sets the clock used to timestamp trades.
func WithClock(now func() time.Time) LedgerOption { return func(g *Ledger) { g.now = now } }

// NewLedger creates a ledger for an account holding initialCash.
// A nil notifier discards messages.
func NewLedger(initialCash Money, notifier Notifier, opts ...LedgerOption) *Ledger {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	l := &Ledger{
		account:  NewAccount(initialCash),
		notifier: notifier,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cash = stream.NewSubject(initialCash)
	l.holdings = stream.NewSubject([]Holding{})
	return l
}

// Buy purchases qty shares of inst at inst.Price.
//
// inst is the snapshot the caller resolved from the Market: the Ledger does not
// look prices up itself.
func (l *Ledger) Buy(inst Instrument, qty Quantity) (Trade, error) {
	trade, err := l.buy(inst, qty)
	l.report(trade, err)
	return trade, err
}

func (l *Ledger) buy(inst Instrument, qty Quantity) (Trade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := validateBuy(inst, qty, l.account.Cash); err != nil {
		return Trade{}, err
	}
	total := inst.Price.Mul(qty)

	h, ok := l.account.Holding(inst.Symbol)
	if ok {
		h.Quantity = h.Quantity.Add(qty)
		h.CostBasis = h.CostBasis.Add(total)
		h.MarketValue = h.LastPrice.Mul(h.Quantity)
		h.Return = h.MarketValue.Sub(h.CostBasis)
	} else {
		h = newHolding(inst, qty, total)
	}

	next := l.account.withHolding(h).withCash(l.account.Cash.Sub(total))
	return l.commit(next, CmdBuy, inst.Symbol, qty, inst.Price, total), nil
}

// Sell sells qty shares of the holding h.
//
// h identifies the position by symbol; the current state of that position is
// read from the Account under the lock, so a stale h is harmless. Shares are
// sold at the position's last valued price.
func (l *Ledger) Sell(h Holding, qty Quantity) (Trade, error) {
	trade, err := l.sell(h.Symbol, qty)
	l.report(trade, err)
	return trade, err
}

func (l *Ledger) sell(symbol string, qty Quantity) (Trade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	held, _ := l.account.Holding(symbol)
	if err := validateSell(symbol, held, qty); err != nil {
		return Trade{}, err
	}

	saleValue := held.LastPrice.Mul(qty)
	removed := held.CostBasis
	if qty.LessThan(held.Quantity) {
		removed = held.CostBasis.Mul(qty).Div(held.Quantity)
	}

	h := held
	h.Quantity = held.Quantity.Sub(qty)
	h.CostBasis = held.CostBasis.Sub(removed)
	h.MarketValue = h.LastPrice.Mul(h.Quantity)
	h.Return = h.MarketValue.Sub(h.CostBasis)

	next := l.account.withHolding(h).withCash(l.account.Cash.Add(saleValue))
	return l.commit(next, CmdSell, symbol, qty, held.LastPrice, saleValue), nil
}

// commit swaps in the next account, journals the trade and publishes.
// It must be called with the lock held.
func (l *Ledger) commit(next Account, cmd CommandType, symbol string, qty Quantity, price, amount Money) Trade {
	trade := Trade{
		ID:       uuid.New(),
		Time:     l.now(),
		Command:  cmd,
		Symbol:   symbol,
		Quantity: qty,
		Price:    price,
		Amount:   amount,
	}
	l.account = next
	l.trades = append(l.trades, trade)
	l.cash.Publish(next.Cash)
	l.holdings.Publish(next.Holdings)
	return trade
}

// report logs the outcome of a trade and signals the notifier.
func (l *Ledger) report(trade Trade, err error) {
	if err != nil {
		l.logger.Info().Err(err).Msg("trade rejected")
		notify(l.notifier, l.logger, false, RejectionMessage(err))
		return
	}
	l.logger.Info().
		Str("id", trade.ID.String()).
		Str("command", string(trade.Command)).
		Str("symbol", trade.Symbol).
		Int64("quantity", trade.Quantity.Int64()).
		Stringer("amount", trade.Amount).
		Msg("trade executed")
	notify(l.notifier, l.logger, true, trade.Message())
}

// Reject reports a trade that failed before reaching the Ledger, such as an
// unresolved symbol, through the same channel as the Ledger's own rejections.
func (l *Ledger) Reject(err error) {
	l.report(Trade{}, err)
}

// Revalue prices every holding from prices and publishes the holdings.
// A symbol prices cannot resolve is valued at zero. Cash is never touched.
func (l *Ledger) Revalue(prices PriceSource) []Holding {
	l.mu.Lock()
	defer l.mu.Unlock()

	holdings := make([]Holding, len(l.account.Holdings))
	for i, h := range l.account.Holdings {
		price := prices.Price(h.Symbol)
		if price.IsZero() {
			l.logger.Warn().Str("symbol", h.Symbol).Msg("no price available, holding valued at zero")
		}
		holdings[i] = h.revalue(price)
	}
	l.account = Account{Cash: l.account.Cash, Holdings: holdings}
	l.holdings.Publish(holdings)
	return holdings
}

// Account returns the current account.
func (l *Ledger) Account() Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.account
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money { return l.Account().Cash }

// Holdings returns the current holdings in order of first purchase.
// The returned slice must not be modified.
func (l *Ledger) Holdings() []Holding { return l.Account().Holdings }

// Holding returns the current position in symbol.
func (l *Ledger) Holding(symbol string) (Holding, bool) { return l.Account().Holding(symbol) }

// Trades returns the journal of executed trades, oldest first.
func (l *Ledger) Trades() []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.trades)
}

// Summary totals the current account.
func (l *Ledger) Summary() Summary { return NewSummary(l.Account()) }

// CashUpdates returns the stream of cash balances.
func (l *Ledger) CashUpdates() *stream.Subject[Money] { return l.cash }

// HoldingsUpdates returns the stream of holdings snapshots.
func (l *Ledger) HoldingsUpdates() *stream.Subject[[]Holding] { return l.holdings }

// Close ends the cash and holdings streams.
func (l *Ledger) Close() {
	l.cash.Close()
	l.holdings.Close()
}
