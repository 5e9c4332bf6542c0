// Package journal persists reconstructed positions so analysis runs can be
// queried later without re-uploading the source export.
package journal

import (
	"time"

	"github.com/rustyeddy/tradebook/positions"
)

// Run describes one analysis of an uploaded event batch.
type Run struct {
	RunID   string
	Created time.Time
	Source  string

	Events    int
	Positions int
	OpenLots  int
	Errors    int
}

// Record is the flat, queryable form of a stored position. Fills are not
// persisted; the count is kept so drill-down gaps are visible.
type Record struct {
	RecordID   string
	RunID      string
	PositionID string

	Symbol string
	Side   string

	OpenedAt time.Time
	ClosedAt time.Time

	Quantity   float64
	EntryPrice float64
	ExitPrice  float64

	RealizedPnl     float64
	NetProfit       float64
	NetProfitApprox bool

	Fills int
}

type Journal interface {
	RecordRun(Run) error
	RecordPositions(runID string, ps []positions.Position) error
	Close() error
}
