package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradebook/pkg/id"
	"github.com/rustyeddy/tradebook/positions"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, source, events, positions, open_lots, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Source, r.Events, r.Positions, r.OpenLots, r.Errors,
	)
	return err
}

// RecordPositions stores one row per position under the given run. Each row
// gets a fresh ULID record ID; the position's own deterministic ID is kept
// alongside for lookups.
func (j *SQLite) RecordPositions(runID string, ps []positions.Position) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO positions
		(record_id, run_id, position_id, symbol, side, opened_at, closed_at,
		 quantity, entry_price, exit_price, realized_pnl, net_profit, net_approx, fills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range ps {
		approx := 0
		if p.NetProfitApprox {
			approx = 1
		}
		if _, err := stmt.Exec(
			id.New(), runID, p.ID, p.Symbol, string(p.Side),
			p.OpenedAt, p.ClosedAt,
			p.Quantity, p.EntryPrice, p.ExitPrice,
			p.RealizedPnl, p.NetProfit, approx, len(p.Fills),
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
