// Package positions reconstructs round-trip positions from a batch of
// trade fill events.
//
// Closes are matched against open inventory FIFO per (exchange, market,
// symbol, side) key. A close may span several lots; each lot only ever
// sees its own slice of the close. A lot becomes a Position the moment
// its remaining quantity hits zero, and whatever inventory is left after
// the sweep is reported as still open.
package positions

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/tradebook/trade"
)

// DefaultEpsilon absorbs float noise in quantity comparisons.
const DefaultEpsilon = 1e-8

// Options control matching behavior.
type Options struct {
	// Epsilon is the absolute tolerance below which a remaining quantity
	// counts as zero. Zero means DefaultEpsilon.
	Epsilon float64

	// NetProfitFallback substitutes the realized PnL sum for a position's
	// net profit when no contributing close carried a net profit. Positions
	// built this way are marked NetProfitApprox.
	NetProfitFallback bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon, NetProfitFallback: true}
}

// Result is the complete output of one matching sweep.
type Result struct {
	Positions []Position `json:"positions"`
	OpenLots  []OpenLot  `json:"openLotsRemaining"`
	Errors    []string   `json:"errors"`
}

// Build runs one matching sweep over a batch of events. The input may be in
// any order; events are sorted by timestamp with ties kept in input order,
// so identical input always yields identical output. Build never fails: bad
// rows are skipped or reported in Result.Errors and the sweep continues.
func Build(events []trade.Event, opts Options) Result {
	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	sorted := make([]trade.Event, 0, len(events))
	for _, e := range events {
		if e.Matchable() {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var res Result

	queues := map[string][]*OpenLot{}
	keyOrder := []string{}
	lotSeq := map[string]int{}

	for _, e := range sorted {
		key := e.Key()

		switch e.Action {
		case trade.ActionOpen:
			if e.Quantity <= 0 {
				continue
			}

			if _, ok := queues[key]; !ok {
				keyOrder = append(keyOrder, key)
			}
			lotSeq[key]++

			lot := &OpenLot{
				Key:           key,
				ID:            lotID(e, lotSeq[key]),
				Symbol:        e.Symbol,
				Side:          e.Side,
				OpenedAt:      e.Timestamp,
				Remaining:     e.Quantity,
				EntryNotional: e.Quantity * e.Price,
				EntryQuantity: e.Quantity,
				Fills:         []Fill{{Event: e, SliceQuantity: e.Quantity}},
			}
			queues[key] = append(queues[key], lot)

		case trade.ActionClose:
			if e.Quantity <= 0 {
				continue
			}

			remaining := e.Quantity
			queue := queues[key]

			for remaining > eps && len(queue) > 0 {
				lot := queue[0]

				slice := lot.Remaining
				if remaining < slice {
					slice = remaining
				}

				lot.Fills = append(lot.Fills, Fill{Event: e, SliceQuantity: slice})
				lot.Remaining -= slice
				remaining -= slice

				if lot.Remaining <= eps {
					res.Positions = append(res.Positions, lot.finalize(opts.NetProfitFallback))
					queue = queue[1:]
				}
			}
			queues[key] = queue

			if remaining > eps {
				res.Errors = append(res.Errors, fmt.Sprintf(
					"CLOSE without matching OPEN inventory: %s %s at %s (unmatched %v)",
					e.Symbol, e.Side, e.Timestamp.UTC().Format(time.RFC3339), remaining))
			}
		}
	}

	for _, key := range keyOrder {
		for _, lot := range queues[key] {
			res.OpenLots = append(res.OpenLots, *lot)
		}
	}

	return res
}

// lotID derives a stable position identifier from the originating open.
// No randomness here: the same batch must produce the same IDs on every run.
func lotID(e trade.Event, seq int) string {
	ref := e.ID
	if ref == "" {
		ref = e.Timestamp.UTC().Format("20060102T150405.000")
	}
	return fmt.Sprintf("%s-%s-%s-%d", e.Symbol, e.Side, ref, seq)
}
