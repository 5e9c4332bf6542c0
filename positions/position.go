package positions

import (
	"time"

	"github.com/rustyeddy/tradebook/trade"
)

// Fill is one event's contribution to a single lot. SliceQuantity is the
// portion of the event's quantity applied to this lot, which is less than
// Event.Quantity when a close spans a lot boundary. The source event itself
// is never modified.
type Fill struct {
	Event         trade.Event `json:"event"`
	SliceQuantity float64     `json:"sliceQuantity"`
}

// Position is one finalized round trip: a lot whose remaining quantity
// reached zero. Positions are append-only output; nothing mutates them
// after Build returns.
type Position struct {
	ID     string     `json:"id"`
	Symbol string     `json:"symbol"`
	Side   trade.Side `json:"positionSide"`

	OpenedAt time.Time `json:"openedAt"`
	ClosedAt time.Time `json:"closedAt"`

	// Quantity is the originating lot's full entry quantity.
	Quantity   float64 `json:"quantity"`
	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`

	RealizedPnl float64 `json:"realizedPnl"`
	NetProfit   float64 `json:"netProfit"`

	// NetProfitApprox is set when NetProfit was backfilled from RealizedPnl
	// because no contributing close carried a net profit. The value is an
	// approximation, not an exchange-reported figure.
	NetProfitApprox bool `json:"netProfitApprox,omitempty"`

	// Fills lists the originating open plus every close slice, in the order
	// they were applied.
	Fills []Fill `json:"fills"`
}
