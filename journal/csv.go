// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/tradebook/positions"
)

type CSV struct {
	w    *csv.Writer
	file *os.File
}

func NewCSV(path string) (*CSV, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(file)
	if err := w.Write([]string{
		"run_id", "position_id", "symbol", "side", "opened_at", "closed_at",
		"quantity", "entry_price", "exit_price", "realized_pnl", "net_profit",
		"net_approx", "fills",
	}); err != nil {
		file.Close()
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return nil, err
	}

	return &CSV{w: w, file: file}, nil
}

// RecordRun is a no-op for CSV output; run metadata only lives in SQLite.
func (j *CSV) RecordRun(Run) error { return nil }

func (j *CSV) RecordPositions(runID string, ps []positions.Position) error {
	for _, p := range ps {
		approx := "0"
		if p.NetProfitApprox {
			approx = "1"
		}
		err := j.w.Write([]string{
			runID,
			p.ID,
			p.Symbol,
			string(p.Side),
			p.OpenedAt.UTC().Format(time.RFC3339),
			p.ClosedAt.UTC().Format(time.RFC3339),
			f(p.Quantity),
			f(p.EntryPrice),
			f(p.ExitPrice),
			f(p.RealizedPnl),
			f(p.NetProfit),
			approx,
			strconv.Itoa(len(p.Fills)),
		})
		if err != nil {
			return err
		}
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.file.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
