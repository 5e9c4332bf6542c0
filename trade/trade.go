package trade

import (
	"fmt"
	"time"
)

// Action says whether a fill added to or reduced a position.
type Action string

const (
	ActionOpen  Action = "OPEN"
	ActionClose Action = "CLOSE"
)

// Side is the direction of the position a fill belongs to.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Status is the execution status reported by the upstream export.
type Status string

const (
	StatusExecuted  Status = "EXECUTED"
	StatusCancelled Status = "CANCELLED"
)

// Event is one normalized trade fill as produced by the upstream import
// layer. Events are treated as immutable: the matcher never writes to them,
// it only annotates copies with slice quantities.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Exchange   string `json:"exchange"`
	MarketType string `json:"marketType"`
	Symbol     string `json:"symbol"`

	Action Action `json:"action"`
	Side   Side   `json:"positionSide"`

	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Notional float64 `json:"notional"`

	RealizedPnl float64 `json:"realizedPnl,omitempty"`
	NetProfit   float64 `json:"netProfit,omitempty"`

	Status Status `json:"status"`

	// Raw carries the original row for drill-down display. Opaque here.
	Raw map[string]any `json:"raw,omitempty"`
}

// Key returns the inventory bucket this event trades in. Lots are only ever
// matched against events with an identical key.
func (e Event) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", e.Exchange, e.MarketType, e.Symbol, e.Side)
}

// Matchable reports whether the event participates in lot matching:
// executed, and carrying both a symbol and a side.
func (e Event) Matchable() bool {
	if e.Status != "" && e.Status != StatusExecuted {
		return false
	}
	return e.Symbol != "" && e.Side != ""
}
