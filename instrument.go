package papertrade

import "fmt"

// Instrument is a tradable symbol with a simulated price.
type Instrument struct {
	Symbol string // Symbol uniquely identifies the instrument, e.g. "AAPL".
	Name   string // Name is the display name, e.g. "Apple Inc.".
	Price  Money  // Price is the current quote.
	Change Money  // Change is the signed price move of the last tick.
}

// NewInstrument creates an instrument with no price change yet.
func NewInstrument(symbol, name string, price Money) Instrument {
	return Instrument{Symbol: symbol, Name: name, Price: price, Change: M(0, price.Currency())}
}

func (i Instrument) String() string {
	return fmt.Sprintf("%s %s (%s)", i.Symbol, i.Price, i.Change.SignedString())
}

// MarshalJSON implements the json.Marshaler interface for Instrument.
func (i Instrument) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", i.Symbol)
	w.Optional("name", i.Name)
	w.Append("price", i.Price)
	w.Append("change", i.Change)
	return w.MarshalJSON()
}

// DefaultCatalog returns the seed instruments of a new market, priced in currency.
func DefaultCatalog(currency string) []Instrument {
	return []Instrument{
		NewInstrument("AAPL", "Apple Inc.", M(150, currency)),
		NewInstrument("GOOGL", "Alphabet Inc.", M(2800, currency)),
		NewInstrument("MSFT", "Microsoft Corp.", M(300, currency)),
		NewInstrument("AMZN", "Amazon.com Inc.", M(3300, currency)),
	}
}
