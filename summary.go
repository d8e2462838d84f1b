package papertrade

// Summary totals an Account.
type Summary struct {
	Cash          Money
	MarketValue   Money // sum of holdings' market value
	CostBasis     Money // sum of holdings' cost basis
	Return        Money // MarketValue − CostBasis
	NetWorth      Money // Cash + MarketValue
	ReturnPercent Percent
}

// NewSummary computes the totals of a.
func NewSummary(a Account) Summary {
	zero := M(0, a.Cash.Currency())
	s := Summary{Cash: a.Cash, MarketValue: zero, CostBasis: zero}
	for _, h := range a.Holdings {
		s.MarketValue = s.MarketValue.Add(h.MarketValue)
		s.CostBasis = s.CostBasis.Add(h.CostBasis)
	}
	s.Return = s.MarketValue.Sub(s.CostBasis)
	s.NetWorth = s.Cash.Add(s.MarketValue)
	s.ReturnPercent = percentOf(s.Return, s.CostBasis)
	return s
}

// MarshalJSON implements the json.Marshaler interface for Summary.
func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("cash", s.Cash)
	w.Append("marketValue", s.MarketValue)
	w.Append("costBasis", s.CostBasis)
	w.Append("return", s.Return)
	w.Append("netWorth", s.NetWorth)
	w.Append("returnPercent", float64(s.ReturnPercent))
	return w.MarshalJSON()
}
