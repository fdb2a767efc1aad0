package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantframe/quantframe/internal/types"
)

// RoundTrip pairs a buy fill with the sell fill that closed it.
type RoundTrip struct {
	BuyTime     time.Time `yaml:"buy_time"`
	SellTime    time.Time `yaml:"sell_time"`
	BuyPrice    float64   `yaml:"buy_price"`
	SellPrice   float64   `yaml:"sell_price"`
	Quantity    int64     `yaml:"quantity"`
	Profit      float64   `yaml:"profit"`
	ProfitRate  float64   `yaml:"profit_rate"`
	HoldingDays int       `yaml:"holding_days"`
}

// TradeAnalysis summarizes the closed round trips of a run.
type TradeAnalysis struct {
	RoundTrips     []RoundTrip `yaml:"round_trips"`
	WinningTrades  int         `yaml:"winning_trades"`
	LosingTrades   int         `yaml:"losing_trades"`
	WinRate        float64     `yaml:"win_rate"`
	AvgProfit      float64     `yaml:"avg_profit"`
	AvgProfitRate  float64     `yaml:"avg_profit_rate"`
	AvgHoldingDays float64     `yaml:"avg_holding_days"`
	MaxProfit      float64     `yaml:"max_profit"`
	MaxLoss        float64     `yaml:"max_loss"`
	ProfitFactor   float64     `yaml:"profit_factor"`
	TotalFees      float64     `yaml:"total_fees"`
}

// RoundTrips pairs the k-th buy with the k-th sell of the trade log. The
// pairing is exact because the engine holds at most one open position, so a
// sell always closes the immediately preceding buy. A trailing unclosed buy
// is excluded.
func RoundTrips(trades []types.Trade) []RoundTrip {
	var buys, sells []types.Trade

	for _, trade := range trades {
		switch trade.Side {
		case types.SideBuy:
			buys = append(buys, trade)
		case types.SideSell:
			sells = append(sells, trade)
		}
	}

	n := min(len(buys), len(sells))
	if n == 0 {
		return nil
	}

	roundTrips := make([]RoundTrip, 0, n)

	for i := 0; i < n; i++ {
		buy, sell := buys[i], sells[i]

		quantity := decimal.NewFromInt(buy.Quantity)
		profit := decimal.NewFromFloat(sell.Price).Sub(decimal.NewFromFloat(buy.Price)).Mul(quantity).
			Sub(decimal.NewFromFloat(buy.Fees)).
			Sub(decimal.NewFromFloat(sell.Fees))
		basis := decimal.NewFromFloat(buy.Price).Mul(quantity)

		profitRate := 0.0
		if !basis.IsZero() {
			profitRate = profit.Div(basis).InexactFloat64()
		}

		roundTrips = append(roundTrips, RoundTrip{
			BuyTime:     buy.Time,
			SellTime:    sell.Time,
			BuyPrice:    buy.Price,
			SellPrice:   sell.Price,
			Quantity:    buy.Quantity,
			Profit:      profit.InexactFloat64(),
			ProfitRate:  profitRate,
			HoldingDays: int(sell.Time.Sub(buy.Time).Hours() / 24),
		})
	}

	return roundTrips
}

// Trades computes the trade analysis over the closed round trips of a run.
// With no closed round trips everything is zero except TotalFees, which sums
// the whole trade log.
func (c *Calculator) Trades(trades []types.Trade) TradeAnalysis {
	analysis := TradeAnalysis{
		TotalFees: totalFees(trades),
	}

	roundTrips := RoundTrips(trades)
	if len(roundTrips) == 0 {
		return analysis
	}

	analysis.RoundTrips = roundTrips
	analysis.MaxProfit = roundTrips[0].Profit
	analysis.MaxLoss = roundTrips[0].Profit

	var profitSum, rateSum, holdingSum float64

	winSum, lossSum := decimal.Zero, decimal.Zero

	for _, rt := range roundTrips {
		profitSum += rt.Profit
		rateSum += rt.ProfitRate
		holdingSum += float64(rt.HoldingDays)

		switch {
		case rt.Profit > 0:
			analysis.WinningTrades++

			winSum = winSum.Add(decimal.NewFromFloat(rt.Profit))
		case rt.Profit < 0:
			analysis.LosingTrades++

			lossSum = lossSum.Add(decimal.NewFromFloat(rt.Profit))
		}

		if rt.Profit > analysis.MaxProfit {
			analysis.MaxProfit = rt.Profit
		}

		if rt.Profit < analysis.MaxLoss {
			analysis.MaxLoss = rt.Profit
		}
	}

	n := float64(len(roundTrips))
	analysis.WinRate = float64(analysis.WinningTrades) / n
	analysis.AvgProfit = profitSum / n
	analysis.AvgProfitRate = rateSum / n
	analysis.AvgHoldingDays = holdingSum / n

	if analysis.LosingTrades > 0 && !lossSum.IsZero() {
		analysis.ProfitFactor = winSum.Div(lossSum).Abs().InexactFloat64()
	}

	return analysis
}

func totalFees(trades []types.Trade) float64 {
	total := decimal.Zero
	for _, trade := range trades {
		total = total.Add(decimal.NewFromFloat(trade.Fees))
	}

	return total.InexactFloat64()
}
