package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PerformanceMetrics are the headline statistics of a completed run.
// All values are derived from the equity curve and trade log alone.
type PerformanceMetrics struct {
	// TotalReturn is (final total value - initial cash) / initial cash.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// AnnualReturn compounds the total return over 365 calendar days.
	// Zero when the run spans less than one calendar day.
	AnnualReturn float64 `yaml:"annual_return" json:"annual_return"`
	// MaxDrawdown is the largest peak-to-trough decline, a non-positive number.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// SharpeRatio uses 252 trading days and the configured risk free rate.
	// Zero when daily returns have zero variance.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// WinRate is the fraction of profitable round trips.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// TotalTrades counts individual fills, buys and sells alike.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// FinalValue is the total portfolio value at the last snapshot.
	FinalValue float64 `yaml:"final_value" json:"final_value"`
}

// BacktestResult is the terminal aggregate of one run. It is produced once
// when the engine completes and never mutated afterwards.
type BacktestResult struct {
	// ID uniquely identifies this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when the run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol is the instrument the run simulated.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Strategy is the name of the strategy that drove the run.
	Strategy string `yaml:"strategy" json:"strategy"`
	// InitialCash is the starting capital.
	InitialCash float64 `yaml:"initial_cash" json:"initial_cash"`
	// Metrics are the headline statistics.
	Metrics PerformanceMetrics `yaml:"metrics" json:"metrics"`
	// EquityCurve is the per-bar snapshot history in bar order.
	EquityCurve []PortfolioSnapshot `yaml:"equity_curve" json:"equity_curve"`
	// Trades is the append-only trade log in execution order.
	Trades []Trade `yaml:"trades" json:"trades"`
	// RejectedBuys counts buy orders skipped for insufficient cash.
	RejectedBuys int `yaml:"rejected_buys" json:"rejected_buys"`
	// RejectedSells counts sell orders skipped for missing held quantity.
	RejectedSells int `yaml:"rejected_sells" json:"rejected_sells"`
}

// WriteResult serializes a result to a YAML file.
func WriteResult(path string, result BacktestResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest result to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest result to file: %w", err)
	}

	return nil
}
