package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradebook/positions"
	"github.com/rustyeddy/tradebook/trade"
)

// FormatPositionOrg renders a Position as an Org-mode block suitable for
// pasting into a trading journal. Structured facts go in a PROPERTIES drawer
// for easy search; the fill list and narrative placeholders follow.
func FormatPositionOrg(p positions.Position) string {
	heading := fmt.Sprintf("** Position: %s %s (%s)", p.Symbol, p.Side, shortID(p.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":POSITION_ID: %s\n", p.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", p.Symbol))
	b.WriteString(fmt.Sprintf(":SIDE: %s\n", p.Side))
	b.WriteString(fmt.Sprintf(":OPENED_AT: %s\n", p.OpenedAt.UTC().Format(time.RFC3339)))
	if !p.ClosedAt.IsZero() {
		b.WriteString(fmt.Sprintf(":CLOSED_AT: %s\n", p.ClosedAt.UTC().Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf(":QUANTITY: %v\n", p.Quantity))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", p.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", p.ExitPrice))
	b.WriteString(fmt.Sprintf(":REALIZED_PNL: %.2f\n", p.RealizedPnl))
	b.WriteString(fmt.Sprintf(":NET_PROFIT: %.2f\n", p.NetProfit))
	if p.NetProfitApprox {
		b.WriteString(":NET_PROFIT_APPROX: yes\n")
	}
	b.WriteString(":END:\n")

	if len(p.Fills) > 0 {
		b.WriteString("\n*** Fills\n")
		b.WriteString("| Action | Time | Slice | Price |\n")
		b.WriteString("|--------+------+-------+-------|\n")
		for _, fl := range p.Fills {
			action := "OPEN"
			if fl.Event.Action == trade.ActionClose {
				action = "CLOSE"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %v | %.5f |\n",
				action, fl.Event.Timestamp.UTC().Format(time.RFC3339),
				fl.SliceQuantity, fl.Event.Price))
		}
	}

	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// FormatPositionsOrg renders multiple positions separated by blank lines.
func FormatPositionsOrg(ps []positions.Position) string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatPositionOrg(p))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 12 {
		return full
	}
	return full[:12]
}
