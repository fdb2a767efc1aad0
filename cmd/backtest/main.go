package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/quantframe/quantframe/internal/analysis"
	"github.com/quantframe/quantframe/internal/backtest"
	"github.com/quantframe/quantframe/internal/datasource"
	"github.com/quantframe/quantframe/internal/logger"
	"github.com/quantframe/quantframe/internal/strategy"
	"github.com/quantframe/quantframe/internal/types"
)

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Backtest end-of-day trading strategies over CSV price data",
		Commands: []*cli.Command{
			runCommand(),
			compareCommand(),
			listCommand(),
			schemaCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
		},
		&cli.StringFlag{
			Name:  "symbol",
			Usage: "Instrument symbol, overrides the config file",
		},
		&cli.FloatFlag{
			Name:  "cash",
			Usage: "Initial cash, overrides the config file",
		},
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to the OHLCV CSV file",
			Required: true,
		},
	}
}

// loadConfig builds the engine config from the optional file plus flag
// overrides. Validation happens when the engine is initialized.
func loadConfig(cmd *cli.Command) (backtest.Config, error) {
	config := backtest.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return backtest.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(content, &config); err != nil {
			return backtest.Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if symbol := cmd.String("symbol"); symbol != "" {
		config.Symbol = symbol
	}

	if cash := cmd.Float("cash"); cash != 0 {
		config.InitialCash = cash
	}

	return config, nil
}

// parseParams turns repeated key=value flags into strategy parameters.
func parseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(map[string]float64, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("parameter %q is not in key=value form", pair)
		}

		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q has a non-numeric value: %w", pair, err)
		}

		params[key] = parsed
	}

	return params, nil
}

// runOne executes a single backtest with a fresh engine and a progress bar.
func runOne(ctx context.Context, log *logger.Logger, config backtest.Config, series *datasource.Series, strat strategy.Strategy, describe string) (types.BacktestResult, error) {
	engine := backtest.NewEngine()
	engine.SetLogger(log)

	if err := engine.InitializeConfig(config); err != nil {
		return types.BacktestResult{}, err
	}

	if err := engine.SetDataSource(series); err != nil {
		return types.BacktestResult{}, err
	}

	if err := engine.SetStrategy(strat); err != nil {
		return types.BacktestResult{}, err
	}

	var bar *progressbar.ProgressBar

	callback := backtest.ProgressCallback(func(current, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), describe)
		}

		//nolint:errcheck // progress rendering is best effort
		bar.Set(current)
	})

	return engine.Run(ctx, optional.Some(callback))
}

func runCommand() *cli.Command {
	flags := append(configFlags(),
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "Strategy key, see the list command",
			Value:   "double_ma",
		},
		&cli.StringSliceFlag{
			Name:    "param",
			Aliases: []string{"p"},
			Usage:   "Strategy parameter override as key=value, repeatable",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Directory for result YAML and journal CSV exports",
		},
		&cli.BoolFlag{
			Name:  "detailed",
			Usage: "Print trade and risk analysis after the summary",
		},
	)

	return &cli.Command{
		Name:   "run",
		Usage:  "Run one strategy over a price series",
		Flags:  flags,
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params, err := parseParams(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	strat, err := strategy.DefaultRegistry().Create(cmd.String("strategy"), params)
	if err != nil {
		return err
	}

	series, err := datasource.LoadCSV(cmd.String("data"), config.Symbol)
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	result, err := runOne(ctx, appLogger, config, series, strat, fmt.Sprintf("Backtesting %s", strat.Name()))
	if err != nil {
		return err
	}

	fmt.Println(renderSummary(result))

	if cmd.Bool("detailed") {
		calculator := analysis.NewCalculator(config.RiskFreeRate)
		fmt.Println(renderTradeAnalysis(calculator.Trades(result.Trades)))
		fmt.Println(renderRiskMetrics(calculator.Risk(result.EquityCurve, result.Metrics.AnnualReturn, result.Metrics.MaxDrawdown)))
		fmt.Print(renderDrawdownTrough(analysis.DrawdownDetails(result.EquityCurve)))
		fmt.Println(renderPeriodReturns("Monthly Returns", analysis.MonthlyReturns(result.EquityCurve)))
		fmt.Println(renderPeriodReturns("Yearly Returns", analysis.YearlyReturns(result.EquityCurve)))
	}

	if output := cmd.String("output"); output != "" {
		if err := writeArtifacts(appLogger, output, result); err != nil {
			return err
		}

		fmt.Println("results written to", output)
	}

	return nil
}

// writeArtifacts persists the result YAML and the duckdb journal exports.
func writeArtifacts(log *logger.Logger, dir string, result types.BacktestResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := types.WriteResult(filepath.Join(dir, "result.yaml"), result); err != nil {
		return err
	}

	journal, err := backtest.NewJournal(log)
	if err != nil {
		return err
	}
	defer journal.Close()

	if err := journal.RecordRun(result); err != nil {
		return err
	}

	return journal.Export(dir)
}

func compareCommand() *cli.Command {
	flags := append(configFlags(),
		&cli.StringSliceFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "Strategy keys to compare, repeatable; defaults to all",
		},
	)

	return &cli.Command{
		Name:   "compare",
		Usage:  "Run several strategies over the same series and tabulate results",
		Flags:  flags,
		Action: compareAction,
	}
}

func compareAction(ctx context.Context, cmd *cli.Command) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := strategy.DefaultRegistry()

	keys := cmd.StringSlice("strategy")
	if len(keys) == 0 {
		for _, info := range registry.List() {
			keys = append(keys, info.Key)
		}
	}

	series, err := datasource.LoadCSV(cmd.String("data"), config.Symbol)
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	results := make([]types.BacktestResult, 0, len(keys))

	for _, key := range keys {
		strat, err := registry.Create(key, nil)
		if err != nil {
			return err
		}

		// Each strategy gets a fresh engine and ledger over the same series.
		result, err := runOne(ctx, appLogger, config, series, strat, fmt.Sprintf("Backtesting %s", key))
		if err != nil {
			return fmt.Errorf("strategy %s failed: %w", key, err)
		}

		results = append(results, result)
	}

	fmt.Println(renderComparison(results))

	return nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the built-in strategies",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, info := range strategy.DefaultRegistry().List() {
				fmt.Println(titleStyle.Render(info.Key) + " - " + info.Name)
				fmt.Print(row("Rule", info.Description))
				fmt.Print(row("Suits", info.Scenario))
				fmt.Print(row("Defaults", fmt.Sprintf("%v", info.DefaultParams)))
				fmt.Println()
			}

			return nil
		},
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the config file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			config := backtest.DefaultConfig()

			schema, err := config.GenerateSchemaJSON()
			if err != nil {
				return err
			}

			fmt.Println(schema)

			return nil
		},
	}
}
