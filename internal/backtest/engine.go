// Package backtest drives a strategy bar by bar over a price series and
// produces an immutable result.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/quantframe/quantframe/internal/analysis"
	"github.com/quantframe/quantframe/internal/datasource"
	"github.com/quantframe/quantframe/internal/logger"
	"github.com/quantframe/quantframe/internal/portfolio"
	"github.com/quantframe/quantframe/internal/strategy"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// State is the lifecycle phase of an Engine.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateRunning       State = "running"
	StateCompleted     State = "completed"
)

// ProgressCallback reports per-bar progress while a run is in flight.
type ProgressCallback func(current, total int)

// Engine simulates one strategy over one price series. An engine runs exactly
// once; a second Run fails fast and a fresh engine must be created instead.
type Engine struct {
	config     Config
	configured bool
	log        *logger.Logger
	series     *datasource.Series
	strat      strategy.Strategy
	state      State

	rejectedBuys  int
	rejectedSells int

	result optional.Option[types.BacktestResult]
}

// NewEngine creates an engine in the uninitialized state.
func NewEngine() *Engine {
	return &Engine{
		state:  StateUninitialized,
		result: optional.None[types.BacktestResult](),
	}
}

// SetLogger replaces the engine logger. Useful for tests; Initialize creates
// a production logger when none was set.
func (e *Engine) SetLogger(log *logger.Logger) {
	e.log = log
}

// Initialize parses and validates the YAML config. It must be called before
// the data source is set so the optional time window can be applied.
func (e *Engine) Initialize(content string) error {
	config, err := ParseConfig(content)
	if err != nil {
		return err
	}

	return e.InitializeConfig(config)
}

// InitializeConfig validates and applies an already built config.
func (e *Engine) InitializeConfig(config Config) error {
	if e.state == StateRunning || e.state == StateCompleted {
		return errors.Newf(errors.ErrCodeEngineRunning, "cannot reconfigure an engine in state %s", e.state)
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if e.log == nil {
		log, err := logger.NewLogger()
		if err != nil {
			return err
		}

		e.log = log
	}

	e.config = config
	e.configured = true
	e.updateState()

	e.log.Debug("engine initialized",
		zap.String("symbol", config.Symbol),
		zap.Float64("initial_cash", config.InitialCash),
	)

	return nil
}

// SetDataSource attaches the price series, clipped to the configured window.
func (e *Engine) SetDataSource(series *datasource.Series) error {
	if !e.configured {
		return errors.New(errors.ErrCodeEngineNotReady, "engine must be initialized before setting a data source")
	}

	if series == nil {
		return errors.New(errors.ErrCodeMissingData, "data source is nil")
	}

	clipped, err := series.Between(e.config.StartTime, e.config.EndTime)
	if err != nil {
		return err
	}

	e.series = clipped
	e.updateState()

	return nil
}

// SetStrategy attaches the strategy that will drive the run.
func (e *Engine) SetStrategy(strat strategy.Strategy) error {
	if strat == nil {
		return errors.New(errors.ErrCodeMissingStrategy, "strategy is nil")
	}

	e.strat = strat
	e.updateState()

	return nil
}

func (e *Engine) updateState() {
	if e.state == StateUninitialized && e.configured && e.series != nil && e.strat != nil {
		e.state = StateReady
	}
}

// State returns the lifecycle phase of the engine.
func (e *Engine) State() State {
	return e.state
}

// Result returns the result of a completed run, or none.
func (e *Engine) Result() optional.Option[types.BacktestResult] {
	return e.result
}

// GetConfigSchema returns the JSON schema of the engine config.
func (e *Engine) GetConfigSchema() (string, error) {
	return e.config.GenerateSchemaJSON()
}

// Run simulates the strategy over the whole series and returns the result.
//
// Per bar the engine marks the open position to the close, asks the strategy
// for a signal, applies it at the close, then snapshots the ledger. Buys size
// to the configured cash utilization rounded down to whole lots; a buy while a
// position is open is a no-op. Sells liquidate the full position. Infeasible
// signals are rejected, counted and logged, never fatal.
func (e *Engine) Run(ctx context.Context, onProgress optional.Option[ProgressCallback]) (types.BacktestResult, error) {
	switch e.state {
	case StateCompleted:
		return types.BacktestResult{}, errors.New(errors.ErrCodeEngineCompleted, "engine has already completed, create a new engine to run again")
	case StateRunning:
		return types.BacktestResult{}, errors.New(errors.ErrCodeEngineRunning, "engine is already running")
	case StateReady:
	default:
		if !e.configured {
			return types.BacktestResult{}, errors.New(errors.ErrCodeEngineNotReady, "engine is not initialized")
		}

		if e.series == nil {
			return types.BacktestResult{}, errors.New(errors.ErrCodeMissingData, "no data source set")
		}

		return types.BacktestResult{}, errors.New(errors.ErrCodeMissingStrategy, "no strategy set")
	}

	e.state = StateRunning

	result, err := e.run(ctx, onProgress)
	if err != nil {
		e.state = StateReady

		return types.BacktestResult{}, err
	}

	e.state = StateCompleted
	e.result = optional.Some(result)

	return result, nil
}

func (e *Engine) run(ctx context.Context, onProgress optional.Option[ProgressCallback]) (types.BacktestResult, error) {
	bars := e.series.Bars()
	symbol := e.config.Symbol

	ledger, err := portfolio.New(e.config.InitialCash, e.config.CommissionRate, e.config.TaxRate, e.log)
	if err != nil {
		return types.BacktestResult{}, err
	}

	if err := e.strat.Prepare(bars); err != nil {
		return types.BacktestResult{}, fmt.Errorf("strategy %s failed to prepare: %w", e.strat.Name(), err)
	}

	e.log.Info("backtest started",
		zap.String("symbol", symbol),
		zap.String("strategy", e.strat.Name()),
		zap.Int("bars", len(bars)),
	)

	for i, bar := range bars {
		select {
		case <-ctx.Done():
			return types.BacktestResult{}, fmt.Errorf("backtest interrupted at bar %d: %w", i, ctx.Err())
		default:
		}

		ledger.Mark(symbol, bar.Close)

		signal, err := e.strat.Decide(strategy.NewHistory(bars[:i+1]), i)
		if err != nil {
			return types.BacktestResult{}, fmt.Errorf("strategy %s failed at bar %d: %w", e.strat.Name(), i, err)
		}

		switch signal.Type {
		case types.SignalTypeBuy:
			e.executeBuy(ledger, bar, symbol, signal)
		case types.SignalTypeSell:
			e.executeSell(ledger, bar, symbol, signal)
		case types.SignalTypeHold:
		}

		ledger.Snapshot(bar.Time)

		if onProgress.IsSome() {
			onProgress.Unwrap()(i+1, len(bars))
		}
	}

	trades := ledger.Trades()
	snapshots := ledger.Snapshots()
	calculator := analysis.NewCalculator(e.config.RiskFreeRate)

	result := types.BacktestResult{
		ID:            uuid.New().String(),
		Timestamp:     time.Now(),
		Symbol:        symbol,
		Strategy:      e.strat.Name(),
		InitialCash:   e.config.InitialCash,
		Metrics:       calculator.Metrics(snapshots, trades, e.config.InitialCash),
		EquityCurve:   snapshots,
		Trades:        trades,
		RejectedBuys:  e.rejectedBuys,
		RejectedSells: e.rejectedSells,
	}

	e.log.Info("backtest completed",
		zap.String("strategy", e.strat.Name()),
		zap.Int("trades", len(trades)),
		zap.Float64("final_value", result.Metrics.FinalValue),
		zap.Int("rejected_buys", e.rejectedBuys),
		zap.Int("rejected_sells", e.rejectedSells),
	)

	return result, nil
}

// executeBuy opens a position at the bar close. Sizing keeps float64
// semantics throughout so lot rounding matches the documented formula.
func (e *Engine) executeBuy(ledger *portfolio.Portfolio, bar types.MarketData, symbol string, signal types.Signal) {
	if ledger.Position(symbol).IsSome() {
		// A buy while holding is a no-op, not a rejection.
		e.log.Debug("buy skipped: position already open",
			zap.String("symbol", symbol),
			zap.Time("bar", bar.Time),
			zap.String("reason", signal.Reason),
		)

		return
	}

	available := ledger.Cash() * e.config.CashUtilization
	quantity := int64(available/bar.Close/float64(e.config.LotSize)) * e.config.LotSize

	if quantity <= 0 || !ledger.Buy(bar.Time, symbol, bar.Close, quantity) {
		e.rejectedBuys++
		e.log.Warn("buy rejected: insufficient cash",
			zap.String("symbol", symbol),
			zap.Time("bar", bar.Time),
			zap.Float64("price", bar.Close),
			zap.Float64("cash", ledger.Cash()),
		)
	}
}

// executeSell liquidates the full open position at the bar close.
func (e *Engine) executeSell(ledger *portfolio.Portfolio, bar types.MarketData, symbol string, signal types.Signal) {
	position := ledger.Position(symbol)
	if position.IsNone() {
		e.rejectedSells++
		e.log.Warn("sell rejected: no open position",
			zap.String("symbol", symbol),
			zap.Time("bar", bar.Time),
			zap.String("reason", signal.Reason),
		)

		return
	}

	if !ledger.Sell(bar.Time, symbol, bar.Close, position.Unwrap().Quantity) {
		e.rejectedSells++
		e.log.Warn("sell rejected",
			zap.String("symbol", symbol),
			zap.Time("bar", bar.Time),
		)
	}
}
