package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const recordColumns = `record_id, run_id, position_id, symbol, side, opened_at, closed_at,
	quantity, entry_price, exit_price, realized_pnl, net_profit, net_approx, fills`

func scanRecord(row interface{ Scan(...any) error }) (Record, error) {
	var (
		rec    Record
		approx int
	)
	err := row.Scan(
		&rec.RecordID,
		&rec.RunID,
		&rec.PositionID,
		&rec.Symbol,
		&rec.Side,
		&rec.OpenedAt,
		&rec.ClosedAt,
		&rec.Quantity,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.RealizedPnl,
		&rec.NetProfit,
		&approx,
		&rec.Fills,
	)
	rec.NetProfitApprox = approx != 0
	return rec, err
}

// GetPosition returns the most recently recorded row for a position ID.
func (j *SQLite) GetPosition(positionID string) (Record, error) {
	row := j.db.QueryRow(`
		SELECT `+recordColumns+`
		FROM positions
		WHERE position_id = ?
		ORDER BY record_id DESC
		LIMIT 1`, positionID)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, fmt.Errorf("position %q not found", positionID)
		}
		return Record{}, err
	}
	return rec, nil
}

// ListClosedBetween returns positions whose closed_at is within [start, end).
func (j *SQLite) ListClosedBetween(start, end time.Time) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT `+recordColumns+`
		FROM positions
		WHERE closed_at >= ? AND closed_at < ?
		ORDER BY closed_at ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListBySymbol returns every recorded position for a symbol, oldest first.
func (j *SQLite) ListBySymbol(symbol string) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT `+recordColumns+`
		FROM positions
		WHERE symbol = ?
		ORDER BY closed_at ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListRuns returns every recorded run, newest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, source, events, positions, open_lots, errors
		FROM runs
		ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Created, &r.Source, &r.Events, &r.Positions, &r.OpenLots, &r.Errors); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
