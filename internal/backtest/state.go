package backtest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/quantframe/quantframe/internal/logger"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// Journal persists completed runs to an embedded duckdb database so trades
// and equity curves can be queried and exported after the engine finishes.
// The in-memory ledger stays authoritative; the journal is an output artifact.
type Journal struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewJournal opens an in-memory duckdb journal and creates its tables.
func NewJournal(log *logger.Logger) (*Journal, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalFailed, "failed to open journal database", err)
	}

	journal := &Journal{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := journal.initialize(); err != nil {
		return nil, err
	}

	return journal, nil
}

func (j *Journal) initialize() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			run_id TEXT,
			trade_id TEXT,
			seq INTEGER,
			symbol TEXT,
			side TEXT,
			price DOUBLE,
			quantity BIGINT,
			timestamp TIMESTAMP,
			gross_amount DOUBLE,
			fees DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to create trades table", err)
	}

	_, err = j.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT,
			seq INTEGER,
			timestamp TIMESTAMP,
			cash DOUBLE,
			positions_value DOUBLE,
			total_value DOUBLE,
			cum_return DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to create snapshots table", err)
	}

	return nil
}

// RecordRun journals the trade log and equity curve of a completed run under
// its result ID. The whole run is written in one transaction.
func (j *Journal) RecordRun(result types.BacktestResult) error {
	tx, err := j.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to begin transaction", err)
	}

	for i, trade := range result.Trades {
		insert := j.sq.
			Insert("trades").
			Columns("run_id", "trade_id", "seq", "symbol", "side", "price", "quantity", "timestamp", "gross_amount", "fees").
			Values(result.ID, uuid.New().String(), i, trade.Symbol, string(trade.Side), trade.Price, trade.Quantity, trade.Time, trade.GrossAmount, trade.Fees).
			RunWith(tx)

		if _, err := insert.Exec(); err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeJournalFailed, "failed to insert trade", err)
		}
	}

	for i, snapshot := range result.EquityCurve {
		insert := j.sq.
			Insert("snapshots").
			Columns("run_id", "seq", "timestamp", "cash", "positions_value", "total_value", "cum_return").
			Values(result.ID, i, snapshot.Time, snapshot.Cash, snapshot.PositionsValue, snapshot.TotalValue, snapshot.Return).
			RunWith(tx)

		if _, err := insert.Exec(); err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeJournalFailed, "failed to insert snapshot", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to commit run", err)
	}

	j.logger.Debug("run journaled",
		zap.String("run_id", result.ID),
		zap.Int("trades", len(result.Trades)),
		zap.Int("snapshots", len(result.EquityCurve)),
	)

	return nil
}

// Trades returns the journaled trade log of a run in fill order.
func (j *Journal) Trades(runID string) ([]types.Trade, error) {
	query := j.sq.
		Select("symbol", "side", "price", "quantity", "timestamp", "gross_amount", "fees").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("seq ASC").
		RunWith(j.db)

	rows, err := query.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var trade types.Trade

		var side string

		if err := rows.Scan(&trade.Symbol, &side, &trade.Price, &trade.Quantity, &trade.Time, &trade.GrossAmount, &trade.Fees); err != nil {
			return nil, errors.Wrap(errors.ErrCodeJournalFailed, "failed to scan trade", err)
		}

		trade.Side = types.Side(side)
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalFailed, "error iterating trades", err)
	}

	return trades, nil
}

// Snapshots returns the journaled equity curve of a run in bar order.
func (j *Journal) Snapshots(runID string) ([]types.PortfolioSnapshot, error) {
	query := j.sq.
		Select("timestamp", "cash", "positions_value", "total_value", "cum_return").
		From("snapshots").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("seq ASC").
		RunWith(j.db)

	rows, err := query.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalFailed, "failed to query snapshots", err)
	}
	defer rows.Close()

	var snapshots []types.PortfolioSnapshot

	for rows.Next() {
		var snapshot types.PortfolioSnapshot

		if err := rows.Scan(&snapshot.Time, &snapshot.Cash, &snapshot.PositionsValue, &snapshot.TotalValue, &snapshot.Return); err != nil {
			return nil, errors.Wrap(errors.ErrCodeJournalFailed, "failed to scan snapshot", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalFailed, "error iterating snapshots", err)
	}

	return snapshots, nil
}

// Export writes the journal tables to CSV files in dir.
func (j *Journal) Export(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to create export directory", err)
	}

	tradesPath := filepath.Join(dir, "trades.csv")
	if _, err := j.db.Exec(fmt.Sprintf(`COPY trades TO '%s' (FORMAT CSV, HEADER)`, tradesPath)); err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to export trades", err)
	}

	snapshotsPath := filepath.Join(dir, "snapshots.csv")
	if _, err := j.db.Exec(fmt.Sprintf(`COPY snapshots TO '%s' (FORMAT CSV, HEADER)`, snapshotsPath)); err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to export snapshots", err)
	}

	j.logger.Info("journal exported",
		zap.String("trades", tradesPath),
		zap.String("snapshots", snapshotsPath),
	)

	return nil
}

// Cleanup drops and recreates the journal tables.
func (j *Journal) Cleanup() error {
	if _, err := j.db.Exec(`
		DROP TABLE IF EXISTS trades;
		DROP TABLE IF EXISTS snapshots;
	`); err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to drop tables", err)
	}

	return j.initialize()
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
