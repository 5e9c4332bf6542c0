package positions

import (
	"time"

	"github.com/rustyeddy/tradebook/trade"
)

// OpenLot is the unconsumed inventory originating from one OPEN event.
// It lives at a fixed spot in its key's FIFO queue until closes grind
// Remaining down to zero, at which point it is finalized into a Position
// and removed.
type OpenLot struct {
	Key    string     `json:"key"`
	ID     string     `json:"id"`
	Symbol string     `json:"symbol"`
	Side   trade.Side `json:"positionSide"`

	OpenedAt  time.Time `json:"openedAt"`
	Remaining float64   `json:"remainingQuantity"`

	// Entry accumulators for the weighted average entry price.
	EntryNotional float64 `json:"entryNotional"`
	EntryQuantity float64 `json:"entryQuantity"`

	Fills []Fill `json:"fills"`
}

// EntryPrice returns the quantity-weighted average entry price.
func (l *OpenLot) EntryPrice() float64 {
	if l.EntryQuantity <= 0 {
		return 0
	}
	return l.EntryNotional / l.EntryQuantity
}

// finalize turns a fully consumed lot into a Position. Exit price is the
// slice-weighted average over the close fills, and per-slice PnL is the
// event's PnL scaled by sliceQty/eventQty so a close split across lots
// never double counts.
func (l *OpenLot) finalize(netProfitFallback bool) Position {
	var (
		exitNotional float64
		exitQuantity float64
		sumRealized  float64
		sumNet       float64
		closedAt     time.Time
	)

	for _, f := range l.Fills {
		if f.Event.Action != trade.ActionClose {
			continue
		}

		exitNotional += f.SliceQuantity * f.Event.Price
		exitQuantity += f.SliceQuantity

		if f.Event.Quantity > 0 {
			ratio := f.SliceQuantity / f.Event.Quantity
			sumRealized += f.Event.RealizedPnl * ratio
			sumNet += f.Event.NetProfit * ratio
		}

		closedAt = f.Event.Timestamp
	}

	exitPrice := 0.0
	if exitQuantity > 0 {
		exitPrice = exitNotional / exitQuantity
	}

	p := Position{
		ID:          l.ID,
		Symbol:      l.Symbol,
		Side:        l.Side,
		OpenedAt:    l.OpenedAt,
		ClosedAt:    closedAt,
		Quantity:    l.EntryQuantity,
		EntryPrice:  l.EntryPrice(),
		ExitPrice:   exitPrice,
		RealizedPnl: sumRealized,
		NetProfit:   sumNet,
		Fills:       l.Fills,
	}

	// Upstream exports often omit netProfit entirely; a sum of exactly zero
	// alongside a non-zero realized PnL means the field was never populated.
	if netProfitFallback && sumNet == 0 && sumRealized != 0 {
		p.NetProfit = sumRealized
		p.NetProfitApprox = true
	}

	return p
}
