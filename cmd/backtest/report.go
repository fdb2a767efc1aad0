package main

import (
	"fmt"
	"strings"

	"github.com/quantframe/quantframe/internal/analysis"
	"github.com/quantframe/quantframe/internal/types"
)

// renderSummary renders the headline result of a single run.
func renderSummary(result types.BacktestResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Backtest Result") + "\n")
	b.WriteString(row("Run ID", result.ID))
	b.WriteString(row("Symbol", result.Symbol))
	b.WriteString(row("Strategy", result.Strategy))
	b.WriteString(row("Initial cash", formatMoney(result.InitialCash)))
	b.WriteString(row("Final value", formatMoney(result.Metrics.FinalValue)))
	b.WriteString(row("Total return", formatPercent(result.Metrics.TotalReturn)))
	b.WriteString(row("Annual return", formatPercent(result.Metrics.AnnualReturn)))
	b.WriteString(row("Max drawdown", formatPercent(result.Metrics.MaxDrawdown)))
	b.WriteString(row("Sharpe ratio", fmt.Sprintf("%.2f", result.Metrics.SharpeRatio)))
	b.WriteString(row("Win rate", formatPercent(result.Metrics.WinRate)))
	b.WriteString(row("Total trades", fmt.Sprintf("%d", result.Metrics.TotalTrades)))

	if result.RejectedBuys > 0 || result.RejectedSells > 0 {
		b.WriteString(row("Rejected signals", fmt.Sprintf("%d buys, %d sells", result.RejectedBuys, result.RejectedSells)))
	}

	return b.String()
}

// renderTradeAnalysis renders the round-trip breakdown of a run.
func renderTradeAnalysis(tradeAnalysis analysis.TradeAnalysis) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Trade Analysis") + "\n")

	if len(tradeAnalysis.RoundTrips) == 0 {
		b.WriteString("no closed round trips\n")
		b.WriteString(row("Total fees", formatMoney(tradeAnalysis.TotalFees)))

		return b.String()
	}

	b.WriteString(row("Round trips", fmt.Sprintf("%d", len(tradeAnalysis.RoundTrips))))
	b.WriteString(row("Winning / losing", fmt.Sprintf("%d / %d", tradeAnalysis.WinningTrades, tradeAnalysis.LosingTrades)))
	b.WriteString(row("Win rate", formatPercent(tradeAnalysis.WinRate)))
	b.WriteString(row("Avg profit", formatMoney(tradeAnalysis.AvgProfit)))
	b.WriteString(row("Avg profit rate", formatPercent(tradeAnalysis.AvgProfitRate)))
	b.WriteString(row("Avg holding days", fmt.Sprintf("%.1f", tradeAnalysis.AvgHoldingDays)))
	b.WriteString(row("Max single profit", formatMoney(tradeAnalysis.MaxProfit)))
	b.WriteString(row("Max single loss", formatMoney(tradeAnalysis.MaxLoss)))

	if tradeAnalysis.ProfitFactor > 0 {
		b.WriteString(row("Profit factor", fmt.Sprintf("%.2f", tradeAnalysis.ProfitFactor)))
	}

	b.WriteString(row("Total fees", formatMoney(tradeAnalysis.TotalFees)))

	return b.String()
}

// renderRiskMetrics renders the downside profile of a run.
func renderRiskMetrics(risk analysis.RiskMetrics) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Risk Metrics") + "\n")
	b.WriteString(row("Volatility", formatPercent(risk.Volatility)))
	b.WriteString(row("Downside deviation", formatPercent(risk.DownsideDeviation)))
	b.WriteString(row("Sortino ratio", fmt.Sprintf("%.2f", risk.SortinoRatio)))
	b.WriteString(row("Calmar ratio", fmt.Sprintf("%.2f", risk.CalmarRatio)))
	b.WriteString(row("VaR 95%", formatPercent(risk.VaR95)))
	b.WriteString(row("CVaR 95%", formatPercent(risk.CVaR95)))

	return b.String()
}

// renderDrawdownTrough renders the deepest point of the drawdown series.
func renderDrawdownTrough(points []analysis.DrawdownPoint) string {
	if len(points) == 0 {
		return ""
	}

	trough := points[0]

	for _, point := range points[1:] {
		if point.Drawdown < trough.Drawdown {
			trough = point
		}
	}

	return row("Drawdown trough", fmt.Sprintf("%s on %s (peak %s)",
		formatPercent(trough.Drawdown),
		trough.Time.Format("2006-01-02"),
		formatMoney(trough.Peak),
	))
}

// renderPeriodReturns renders one row per calendar period.
func renderPeriodReturns(title string, periods []analysis.PeriodReturn) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title) + "\n")

	if len(periods) == 0 {
		b.WriteString("not enough data\n")

		return b.String()
	}

	for _, period := range periods {
		b.WriteString(row(period.Period, formatPercent(period.Return)))
	}

	return b.String()
}

// renderComparison renders one row per strategy result.
func renderComparison(results []types.BacktestResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Strategy Comparison") + "\n")
	b.WriteString(fmt.Sprintf("%-14s %12s %12s %12s %8s %8s\n",
		"strategy", "total", "annual", "drawdown", "sharpe", "trades"))

	for _, result := range results {
		b.WriteString(fmt.Sprintf("%-14s %12s %12s %12s %8.2f %8d\n",
			result.Strategy,
			formatPercent(result.Metrics.TotalReturn),
			formatPercent(result.Metrics.AnnualReturn),
			formatPercent(result.Metrics.MaxDrawdown),
			result.Metrics.SharpeRatio,
			result.Metrics.TotalTrades,
		))
	}

	return b.String()
}
