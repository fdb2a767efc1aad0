// Package portfolio implements the cash and position ledger of a backtest.
//
// The ledger is the single source of truth for cash, the open position and
// the executed trade log. Fills either settle fully or are rejected; Buy and
// Sell report feasibility as a bool and never mutate state on rejection.
// Monetary arithmetic runs on shopspring decimals so fee totals come out
// exact instead of accumulating float drift.
package portfolio

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantframe/quantframe/internal/logger"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// Portfolio is a single-currency ledger with at most one position per symbol.
type Portfolio struct {
	initialCash    decimal.Decimal
	cash           decimal.Decimal
	commissionRate decimal.Decimal
	taxRate        decimal.Decimal

	positions map[string]*types.Position
	trades    []types.Trade
	snapshots []types.PortfolioSnapshot

	logger *logger.Logger
}

// New creates a ledger holding initialCash. commissionRate applies to both
// sides of a trade; taxRate applies to the sell side only.
func New(initialCash, commissionRate, taxRate float64, log *logger.Logger) (*Portfolio, error) {
	if initialCash <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "initial cash must be positive, got %f", initialCash)
	}

	if commissionRate < 0 || taxRate < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "fee rates must not be negative, got commission %f tax %f", commissionRate, taxRate)
	}

	return &Portfolio{
		initialCash:    decimal.NewFromFloat(initialCash),
		cash:           decimal.NewFromFloat(initialCash),
		commissionRate: decimal.NewFromFloat(commissionRate),
		taxRate:        decimal.NewFromFloat(taxRate),
		positions:      make(map[string]*types.Position),
		logger:         log,
	}, nil
}

// Buy settles a purchase at price. The full cost, gross plus commission, must
// be covered by available cash or the fill is rejected. The cost basis of the
// resulting position is the quantity-weighted average of fill prices; the
// commission only reduces cash.
func (p *Portfolio) Buy(t time.Time, symbol string, price float64, quantity int64) bool {
	if quantity <= 0 || price <= 0 {
		return false
	}

	gross := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity))
	commission := gross.Mul(p.commissionRate)
	total := gross.Add(commission)

	if total.GreaterThan(p.cash) {
		return false
	}

	p.cash = p.cash.Sub(total)

	position, ok := p.positions[symbol]
	if !ok {
		position = &types.Position{Symbol: symbol}
		p.positions[symbol] = position
	}

	prevCost := decimal.NewFromFloat(position.AverageCost).Mul(decimal.NewFromInt(position.Quantity))
	position.Quantity += quantity
	position.AverageCost = prevCost.Add(gross).Div(decimal.NewFromInt(position.Quantity)).InexactFloat64()
	position.LastPrice = price

	p.trades = append(p.trades, types.Trade{
		Time:        t,
		Symbol:      symbol,
		Side:        types.SideBuy,
		Price:       price,
		Quantity:    quantity,
		GrossAmount: gross.InexactFloat64(),
		Fees:        commission.InexactFloat64(),
	})

	p.logger.Debug("buy filled",
		zap.String("symbol", symbol),
		zap.Float64("price", price),
		zap.Int64("quantity", quantity),
		zap.Float64("fees", commission.InexactFloat64()),
		zap.Float64("cash", p.Cash()),
	)

	return true
}

// Sell settles a sale at price. Selling more than the held quantity, or
// selling a symbol with no open position, is rejected. Proceeds are gross
// minus commission minus transaction tax.
func (p *Portfolio) Sell(t time.Time, symbol string, price float64, quantity int64) bool {
	if quantity <= 0 || price <= 0 {
		return false
	}

	position, ok := p.positions[symbol]
	if !ok || position.Quantity < quantity {
		return false
	}

	gross := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity))
	commission := gross.Mul(p.commissionRate)
	tax := gross.Mul(p.taxRate)
	fees := commission.Add(tax)

	p.cash = p.cash.Add(gross.Sub(fees))

	position.Quantity -= quantity
	position.LastPrice = price

	if position.Quantity == 0 {
		delete(p.positions, symbol)
	}

	p.trades = append(p.trades, types.Trade{
		Time:        t,
		Symbol:      symbol,
		Side:        types.SideSell,
		Price:       price,
		Quantity:    quantity,
		GrossAmount: gross.InexactFloat64(),
		Fees:        fees.InexactFloat64(),
	})

	p.logger.Debug("sell filled",
		zap.String("symbol", symbol),
		zap.Float64("price", price),
		zap.Int64("quantity", quantity),
		zap.Float64("fees", fees.InexactFloat64()),
		zap.Float64("cash", p.Cash()),
	)

	return true
}

// Mark updates the valuation price of the open position, if any.
func (p *Portfolio) Mark(symbol string, price float64) {
	if position, ok := p.positions[symbol]; ok {
		position.LastPrice = price
	}
}

// Position returns a copy of the open position for symbol, or none.
func (p *Portfolio) Position(symbol string) optional.Option[types.Position] {
	position, ok := p.positions[symbol]
	if !ok {
		return optional.None[types.Position]()
	}

	return optional.Some(*position)
}

// Cash returns the available cash balance.
func (p *Portfolio) Cash() float64 {
	return p.cash.InexactFloat64()
}

// InitialCash returns the cash the ledger started with.
func (p *Portfolio) InitialCash() float64 {
	return p.initialCash.InexactFloat64()
}

// PositionsValue returns the mark-to-market value of all open positions.
func (p *Portfolio) PositionsValue() float64 {
	value := 0.0
	for _, position := range p.positions {
		value += position.MarketValue()
	}

	return value
}

// TotalValue returns cash plus the mark-to-market value of open positions.
// Calling it repeatedly without intervening fills or marks returns the same
// value.
func (p *Portfolio) TotalValue() float64 {
	return p.Cash() + p.PositionsValue()
}

// Snapshot records and returns the end-of-bar state of the ledger. The
// snapshot's Return is cumulative relative to initial cash.
func (p *Portfolio) Snapshot(t time.Time) types.PortfolioSnapshot {
	total := decimal.NewFromFloat(p.TotalValue())

	snapshot := types.PortfolioSnapshot{
		Time:           t,
		Cash:           p.Cash(),
		PositionsValue: p.PositionsValue(),
		TotalValue:     total.InexactFloat64(),
		Return:         total.Div(p.initialCash).Sub(decimal.NewFromInt(1)).InexactFloat64(),
	}

	p.snapshots = append(p.snapshots, snapshot)

	return snapshot
}

// Trades returns a copy of the executed trade log in fill order.
func (p *Portfolio) Trades() []types.Trade {
	trades := make([]types.Trade, len(p.trades))
	copy(trades, p.trades)

	return trades
}

// Snapshots returns a copy of the recorded equity curve in bar order.
func (p *Portfolio) Snapshots() []types.PortfolioSnapshot {
	snapshots := make([]types.PortfolioSnapshot, len(p.snapshots))
	copy(snapshots, p.snapshots)

	return snapshots
}

// TotalFees returns the sum of fees across all executed trades.
func (p *Portfolio) TotalFees() float64 {
	total := decimal.Zero
	for _, trade := range p.trades {
		total = total.Add(decimal.NewFromFloat(trade.Fees))
	}

	return total.InexactFloat64()
}
