package papertrade

import (
	"errors"
	"testing"
	"time"
)

func TestLedger_Buy(t *testing.T) {
	n := &recorder{}
	l := NewLedger(USD(10000), n)

	trade, err := l.Buy(instrument("AAPL", 150), Q(10))
	if err != nil {
		t.Fatalf("Buy() unexpected error: %v", err)
	}

	if got, want := l.Cash(), USD(8500); !got.Equal(want) {
		t.Errorf("Cash() = %v, want %v", got, want)
	}
	h, ok := l.Holding("AAPL")
	if !ok {
		t.Fatal("Holding(AAPL) not found")
	}
	if got, want := h.Quantity, Q(10); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := h.CostBasis, USD(1500); !got.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", got, want)
	}
	if got, want := h.LastPrice, USD(150); !got.Equal(want) {
		t.Errorf("LastPrice = %v, want %v", got, want)
	}
	if got, want := h.MarketValue, USD(1500); !got.Equal(want) {
		t.Errorf("MarketValue = %v, want %v", got, want)
	}
	if !h.Return.IsZero() {
		t.Errorf("Return = %v, want 0", h.Return)
	}

	if got, want := trade.Amount, USD(1500); !got.Equal(want) {
		t.Errorf("trade.Amount = %v, want %v", got, want)
	}
	if trade.Command != CmdBuy {
		t.Errorf("trade.Command = %q, want %q", trade.Command, CmdBuy)
	}
	if got, want := n.lastSuccess(), "Bought 10 shares of AAPL"; got != want {
		t.Errorf("success message = %q, want %q", got, want)
	}
}

func TestLedger_BuyAddsToExistingHolding(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	mustBuy(t, l, instrument("AAPL", 150), 10)
	mustBuy(t, l, instrument("MSFT", 300), 1)
	mustBuy(t, l, instrument("AAPL", 160), 5)

	holdings := l.Holdings()
	if len(holdings) != 2 {
		t.Fatalf("len(Holdings()) = %d, want 2", len(holdings))
	}
	if holdings[0].Symbol != "AAPL" || holdings[1].Symbol != "MSFT" {
		t.Errorf("holdings order = %s, %s, want AAPL, MSFT", holdings[0].Symbol, holdings[1].Symbol)
	}
	if got, want := holdings[0].Quantity, Q(15); !got.Equal(want) {
		t.Errorf("AAPL Quantity = %v, want %v", got, want)
	}
	if got, want := holdings[0].CostBasis, USD(2300); !got.Equal(want) {
		t.Errorf("AAPL CostBasis = %v, want %v", got, want)
	}
	if got, want := l.Cash(), USD(7400); !got.Equal(want) {
		t.Errorf("Cash() = %v, want %v", got, want)
	}
}

func TestLedger_BuyRecordsOpeningPriceChange(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	opened := Instrument{Symbol: "AAPL", Name: "Apple Inc.", Price: USD(150), Change: USD(-2.5)}
	mustBuy(t, l, opened, 2)
	mustBuy(t, l, Instrument{Symbol: "AAPL", Name: "Apple Inc.", Price: USD(155), Change: USD(5)}, 1)
	l.Revalue(priceMap{"AAPL": USD(160)})

	h, ok := l.Holding("AAPL")
	if !ok {
		t.Fatal("Holding(AAPL) not found")
	}
	if got, want := h.PriceChange, USD(-2.5); !got.Equal(want) {
		t.Errorf("PriceChange = %v, want %v", got, want)
	}
}

func TestLedger_Sell(t *testing.T) {
	n := &recorder{}
	l := NewLedger(USD(10000), n)
	mustBuy(t, l, instrument("AAPL", 150), 10)
	h, _ := l.Holding("AAPL")

	trade, err := l.Sell(h, Q(4))
	if err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}

	if got, want := trade.Amount, USD(600); !got.Equal(want) {
		t.Errorf("trade.Amount = %v, want %v", got, want)
	}
	if got, want := l.Cash(), USD(9100); !got.Equal(want) {
		t.Errorf("Cash() = %v, want %v", got, want)
	}
	h, _ = l.Holding("AAPL")
	if got, want := h.Quantity, Q(6); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := h.CostBasis, USD(900); !got.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", got, want)
	}
	if got, want := n.lastSuccess(), "Sold 4 shares of AAPL"; got != want {
		t.Errorf("success message = %q, want %q", got, want)
	}
}

func TestLedger_SellHalfRemovesHalfCostBasis(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	mustBuy(t, l, instrument("MSFT", 300), 7)
	mustBuy(t, l, instrument("MSFT", 310.33), 7)
	h, _ := l.Holding("MSFT")
	cost := h.CostBasis

	if _, err := l.Sell(h, Q(7)); err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}

	h, _ = l.Holding("MSFT")
	if got, want := h.Quantity, Q(7); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := h.CostBasis.Round(8), cost.Div(Q(2)).Round(8); !got.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", got, want)
	}
}

func TestLedger_SellAllRemovesHolding(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	mustBuy(t, l, instrument("AAPL", 150), 10)
	mustBuy(t, l, instrument("MSFT", 300), 2)

	if _, err := l.Sell(Holding{Symbol: "AAPL"}, Q(10)); err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}
	if _, ok := l.Holding("AAPL"); ok {
		t.Error("AAPL holding still present after selling every share")
	}
	if got := len(l.Holdings()); got != 1 {
		t.Errorf("len(Holdings()) = %d, want 1", got)
	}
}

func TestLedger_RoundTrip(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	before := l.Cash()

	mustBuy(t, l, instrument("AMZN", 3123.47), 3)
	if _, err := l.Sell(Holding{Symbol: "AMZN"}, Q(3)); err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}

	if got := l.Cash(); !got.Equal(before) {
		t.Errorf("Cash() = %v, want %v", got, before)
	}
	if got := len(l.Holdings()); got != 0 {
		t.Errorf("len(Holdings()) = %d, want 0", got)
	}
}

func TestLedger_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		trade   func(l *Ledger) error
		wantErr error
		wantMsg string
	}{
		{
			name: "insufficient funds",
			trade: func(l *Ledger) error {
				_, err := l.Buy(instrument("GOOGL", 2800), Q(10))
				return err
			},
			wantErr: ErrInsufficientFunds,
			wantMsg: "Insufficient funds",
		},
		{
			name: "more shares than held",
			trade: func(l *Ledger) error {
				_, err := l.Sell(Holding{Symbol: "AAPL"}, Q(11))
				return err
			},
			wantErr: ErrInsufficientShares,
			wantMsg: "Not enough shares to sell",
		},
		{
			name: "symbol not held",
			trade: func(l *Ledger) error {
				_, err := l.Sell(Holding{Symbol: "MSFT"}, Q(1))
				return err
			},
			wantErr: ErrInsufficientShares,
			wantMsg: "Not enough shares to sell",
		},
		{
			name: "zero quantity buy",
			trade: func(l *Ledger) error {
				_, err := l.Buy(instrument("AAPL", 150), Q(0))
				return err
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negative quantity sell",
			trade: func(l *Ledger) error {
				_, err := l.Sell(Holding{Symbol: "AAPL"}, Q(-1))
				return err
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "no price",
			trade: func(l *Ledger) error {
				_, err := l.Buy(instrument("TSLA", 0), Q(1))
				return err
			},
			wantErr: ErrUnknownSymbol,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recorder{}
			l := NewLedger(USD(10000), n)
			mustBuy(t, l, instrument("AAPL", 150), 10)
			before := l.Account()
			trades := len(l.Trades())
			calls := n.count()

			err := tt.trade(l)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			after := l.Account()
			if !after.Cash.Equal(before.Cash) {
				t.Errorf("Cash = %v, want unchanged %v", after.Cash, before.Cash)
			}
			if len(after.Holdings) != len(before.Holdings) || !after.Holdings[0].Quantity.Equal(before.Holdings[0].Quantity) {
				t.Errorf("Holdings = %v, want unchanged %v", after.Holdings, before.Holdings)
			}
			if got := len(l.Trades()); got != trades {
				t.Errorf("len(Trades()) = %d, want %d", got, trades)
			}
			if got := n.count() - calls; got != 1 {
				t.Errorf("notifier called %d times, want 1", got)
			}
			if tt.wantMsg != "" && n.lastError() != tt.wantMsg {
				t.Errorf("error message = %q, want %q", n.lastError(), tt.wantMsg)
			}
		})
	}
}

func TestLedger_SellWithStaleHolding(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	mustBuy(t, l, instrument("AAPL", 150), 10)
	stale, _ := l.Holding("AAPL")

	if _, err := l.Sell(stale, Q(8)); err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}
	if _, err := l.Sell(stale, Q(5)); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("Sell() with stale holding error = %v, want %v", err, ErrInsufficientShares)
	}
}

func TestLedger_SellsAtLastValuedPrice(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	mustBuy(t, l, instrument("AAPL", 150), 10)
	l.Revalue(priceMap{"AAPL": USD(160)})

	trade, err := l.Sell(Holding{Symbol: "AAPL"}, Q(5))
	if err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}
	if got, want := trade.Amount, USD(800); !got.Equal(want) {
		t.Errorf("trade.Amount = %v, want %v", got, want)
	}
	h, _ := l.Holding("AAPL")
	if got, want := h.Return, USD(50); !got.Equal(want) {
		t.Errorf("Return = %v, want %v", got, want)
	}
}

func TestLedger_PublishesAfterTrade(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	cash := l.CashUpdates().Subscribe()
	defer cash.Unsubscribe()
	holdings := l.HoldingsUpdates().Subscribe()
	defer holdings.Unsubscribe()

	if got, want := <-cash.C(), USD(10000); !got.Equal(want) {
		t.Errorf("replayed cash = %v, want %v", got, want)
	}
	if got := <-holdings.C(); len(got) != 0 {
		t.Errorf("replayed holdings = %v, want none", got)
	}

	mustBuy(t, l, instrument("AAPL", 150), 10)

	select {
	case got := <-cash.C():
		if want := USD(8500); !got.Equal(want) {
			t.Errorf("published cash = %v, want %v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("cash not published")
	}
	select {
	case got := <-holdings.C():
		if len(got) != 1 || got[0].Symbol != "AAPL" {
			t.Errorf("published holdings = %v, want AAPL", got)
		}
	case <-time.After(time.Second):
		t.Fatal("holdings not published")
	}
}

func TestLedger_Journal(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	l := NewLedger(USD(10000), nil, WithClock(func() time.Time { return now }))
	mustBuy(t, l, instrument("AAPL", 150), 10)
	if _, err := l.Sell(Holding{Symbol: "AAPL"}, Q(4)); err != nil {
		t.Fatalf("Sell() unexpected error: %v", err)
	}

	trades := l.Trades()
	if len(trades) != 2 {
		t.Fatalf("len(Trades()) = %d, want 2", len(trades))
	}
	if trades[0].Command != CmdBuy || trades[1].Command != CmdSell {
		t.Errorf("commands = %s, %s, want buy, sell", trades[0].Command, trades[1].Command)
	}
	if trades[0].ID == trades[1].ID {
		t.Error("trades share the same ID")
	}
	if !trades[1].Time.Equal(now) {
		t.Errorf("Time = %v, want %v", trades[1].Time, now)
	}
}

func TestLedger_PanickingNotifier(t *testing.T) {
	l := NewLedger(USD(10000), panicNotifier{})

	if _, err := l.Buy(instrument("AAPL", 150), Q(10)); err != nil {
		t.Fatalf("Buy() error = %v, want the notifier panic to be ignored", err)
	}
	if _, err := l.Buy(instrument("GOOGL", 2800), Q(10)); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Buy() error = %v, want %v", err, ErrInsufficientFunds)
	}
	if got, want := l.Cash(), USD(8500); !got.Equal(want) {
		t.Errorf("Cash() = %v, want %v", got, want)
	}
}

type panicNotifier struct{}

func (panicNotifier) Success(string) { panic("display crashed") }
func (panicNotifier) Error(string)   { panic("display crashed") }

func TestSummary(t *testing.T) {
	l := NewLedger(USD(10000), nil)
	mustBuy(t, l, instrument("AAPL", 150), 10)
	mustBuy(t, l, instrument("MSFT", 300), 5)
	l.Revalue(priceMap{"AAPL": USD(165), "MSFT": USD(270)})

	s := l.Summary()
	if got, want := s.Cash, USD(7000); !got.Equal(want) {
		t.Errorf("Cash = %v, want %v", got, want)
	}
	if got, want := s.CostBasis, USD(3000); !got.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", got, want)
	}
	if got, want := s.MarketValue, USD(3000); !got.Equal(want) {
		t.Errorf("MarketValue = %v, want %v", got, want)
	}
	if got, want := s.NetWorth, USD(10000); !got.Equal(want) {
		t.Errorf("NetWorth = %v, want %v", got, want)
	}
	if !s.Return.IsZero() {
		t.Errorf("Return = %v, want 0", s.Return)
	}

	h, _ := l.Holding("AAPL")
	if got, want := h.ReturnPercent(), Percent(10); !got.Equal(want) {
		t.Errorf("AAPL ReturnPercent() = %v, want %v", got, want)
	}
}

func mustBuy(t *testing.T, l *Ledger, inst Instrument, qty int) {
	t.Helper()
	if _, err := l.Buy(inst, Q(qty)); err != nil {
		t.Fatalf("Buy(%s, %d) unexpected error: %v", inst.Symbol, qty, err)
	}
}
