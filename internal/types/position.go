package types

// Position represents the current holding of a single instrument.
// A position never exists with Quantity == 0; the ledger removes it the
// moment the last share is sold.
type Position struct {
	Symbol      string  `csv:"symbol" yaml:"symbol"`
	Quantity    int64   `csv:"quantity" yaml:"quantity"`
	AverageCost float64 `csv:"average_cost" yaml:"average_cost"`
	LastPrice   float64 `csv:"last_price" yaml:"last_price"`
}

// MarketValue returns the position value at the last marked price.
func (p *Position) MarketValue() float64 {
	return float64(p.Quantity) * p.LastPrice
}

// UnrealizedPnL returns the open profit relative to the average cost.
func (p *Position) UnrealizedPnL() float64 {
	return (p.LastPrice - p.AverageCost) * float64(p.Quantity)
}

// UnrealizedPnLRate returns the open profit as a fraction of the average cost.
func (p *Position) UnrealizedPnLRate() float64 {
	if p.AverageCost == 0 {
		return 0
	}

	return (p.LastPrice - p.AverageCost) / p.AverageCost
}
