package types

import "time"

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade is an immutable fill record. The ledger appends trades in execution
// order, which equals chronological order because bars are processed strictly
// in sequence.
type Trade struct {
	Time     time.Time `csv:"time" yaml:"time"`
	Symbol   string    `csv:"symbol" yaml:"symbol"`
	Side     Side      `csv:"side" yaml:"side"`
	Price    float64   `csv:"price" yaml:"price"`
	Quantity int64     `csv:"quantity" yaml:"quantity"`
	// GrossAmount is price * quantity before any fee.
	GrossAmount float64 `csv:"gross_amount" yaml:"gross_amount"`
	// Fees is the commission for buys, commission plus transaction tax for sells.
	Fees float64 `csv:"fees" yaml:"fees"`
}

// PortfolioSnapshot captures the portfolio state at the end of one bar,
// after any trade for that bar settled and the position was marked to close.
// The ordered snapshot sequence is the equity curve.
type PortfolioSnapshot struct {
	Time           time.Time `csv:"time" yaml:"time"`
	Cash           float64   `csv:"cash" yaml:"cash"`
	PositionsValue float64   `csv:"positions_value" yaml:"positions_value"`
	TotalValue     float64   `csv:"total_value" yaml:"total_value"`
	// Return is the cumulative return relative to the initial cash.
	Return float64 `csv:"return" yaml:"return"`
}
