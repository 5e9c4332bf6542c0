package trade

import "time"

// Overview is a coarse summary of a raw event batch, computed before any
// lot matching. It doubles as a data-quality signal: the executed/cancelled
// split is the only place skipped rows show up in aggregate.
type Overview struct {
	TotalRows int `json:"totalRows"`
	Executed  int `json:"executed"`
	Cancelled int `json:"cancelled"`

	Symbols int        `json:"symbols"`
	From    *time.Time `json:"from,omitempty"`
	To      *time.Time `json:"to,omitempty"`

	TotalNotional    float64 `json:"totalNotional"`
	TotalRealizedPnl float64 `json:"totalRealizedPnl"`
	TotalNetProfit   float64 `json:"totalNetProfit"`
}

// BuildOverview folds a raw event batch into an Overview. Only executed
// events contribute to the symbol set, the time range, and the money totals.
func BuildOverview(events []Event) Overview {
	ov := Overview{TotalRows: len(events)}

	symbols := map[string]struct{}{}
	var from, to time.Time

	for _, e := range events {
		if e.Status != "" && e.Status != StatusExecuted {
			continue
		}
		ov.Executed++

		if e.Symbol != "" {
			symbols[e.Symbol] = struct{}{}
		}

		if !e.Timestamp.IsZero() {
			if from.IsZero() || e.Timestamp.Before(from) {
				from = e.Timestamp
			}
			if to.IsZero() || e.Timestamp.After(to) {
				to = e.Timestamp
			}
		}

		ov.TotalNotional += e.Notional
		ov.TotalRealizedPnl += e.RealizedPnl
		ov.TotalNetProfit += e.NetProfit
	}

	ov.Cancelled = ov.TotalRows - ov.Executed
	ov.Symbols = len(symbols)
	if !from.IsZero() {
		ov.From = &from
	}
	if !to.IsZero() {
		ov.To = &to
	}
	return ov
}
