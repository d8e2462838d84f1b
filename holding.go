package papertrade

import "fmt"

// Holding is a position in one instrument.
//
// Symbol is a weak reference to an Instrument of the Market: the holding
// never owns price data, it caches the last price it was valued at.
type Holding struct {
	Symbol      string
	Name        string
	Quantity    Quantity // always positive, a holding is removed at zero
	CostBasis   Money    // cumulative amount paid for the quantity held
	LastPrice   Money
	PriceChange Money // instrument move of the tick the position was opened on
	MarketValue Money // LastPrice × Quantity
	Return      Money // MarketValue − CostBasis
}

// newHolding opens a position bought at price.
func newHolding(inst Instrument, qty Quantity, cost Money) Holding {
	return Holding{
		Symbol:      inst.Symbol,
		Name:        inst.Name,
		Quantity:    qty,
		CostBasis:   cost,
		LastPrice:   inst.Price,
		PriceChange: inst.Change,
		MarketValue: cost,
		Return:      M(0, cost.Currency()),
	}
}

// revalue returns h priced at price.
func (h Holding) revalue(price Money) Holding {
	h.LastPrice = price
	h.MarketValue = price.Mul(h.Quantity)
	h.Return = h.MarketValue.Sub(h.CostBasis)
	return h
}

// ReturnPercent returns the unrealized return relative to the cost basis.
func (h Holding) ReturnPercent() Percent {
	return percentOf(h.Return, h.CostBasis)
}

func (h Holding) String() string {
	return fmt.Sprintf("%s %s @ %s = %s (%s)", h.Quantity, h.Symbol, h.LastPrice, h.MarketValue, h.Return.SignedString())
}

// MarshalJSON implements the json.Marshaler interface for Holding.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Optional("name", h.Name)
	w.Append("quantity", h.Quantity)
	w.Append("costBasis", h.CostBasis)
	w.Append("lastPrice", h.LastPrice)
	w.Append("priceChange", h.PriceChange)
	w.Append("marketValue", h.MarketValue)
	w.Append("return", h.Return)
	return w.MarshalJSON()
}
