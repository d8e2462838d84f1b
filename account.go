package papertrade

import "slices"

// Account is the cash balance and the holdings of the simulated trader.
//
// An Account is a value: the Ledger never mutates one in place, it builds the
// next Account and swaps it in, so any Account handed out stays consistent.
type Account struct {
	Cash     Money
	Holdings []Holding // in order of first purchase, unique symbols
}

// NewAccount returns an account holding only cash.
func NewAccount(cash Money) Account {
	return Account{Cash: cash}
}

func (a Account) index(symbol string) int {
	return slices.IndexFunc(a.Holdings, func(h Holding) bool { return h.Symbol == symbol })
}

// Holding returns the position in symbol, if any.
func (a Account) Holding(symbol string) (Holding, bool) {
	i := a.index(symbol)
	if i < 0 {
		return Holding{}, false
	}
	return a.Holdings[i], true
}

// withHolding returns a copy of a where h replaces the holding of the same
// symbol, or is appended when there is none. A zero quantity removes it.
func (a Account) withHolding(h Holding) Account {
	holdings := slices.Clone(a.Holdings)
	i := a.index(h.Symbol)
	switch {
	case i < 0 && h.Quantity.IsZero():
	case i < 0:
		holdings = append(holdings, h)
	case h.Quantity.IsZero():
		holdings = slices.Delete(holdings, i, i+1)
	default:
		holdings[i] = h
	}
	return Account{Cash: a.Cash, Holdings: holdings}
}

// withCash returns a copy of a with a new cash balance.
func (a Account) withCash(cash Money) Account {
	return Account{Cash: cash, Holdings: a.Holdings}
}

// MarshalJSON implements the json.Marshaler interface for Account.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("cash", a.Cash)
	holdings := a.Holdings
	if holdings == nil {
		holdings = []Holding{}
	}
	w.Append("holdings", holdings)
	return w.MarshalJSON()
}
