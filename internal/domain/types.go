// Package domain defines the core types shared across the helmsman engine:
// signals, tracked positions, and read-only views of broker state.
package domain

import "time"

// ---------------------------------------------------------------------------
// Enums
// ---------------------------------------------------------------------------

// SignalAction is the direction a signal proposes.
type SignalAction string

const (
	SignalActionBuy  SignalAction = "buy"
	SignalActionSell SignalAction = "sell"
)

// OrderSide is the side of a broker order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderStatus is the lifecycle state a broker reports for an order.
type OrderStatus string

const (
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ---------------------------------------------------------------------------
// Engine-owned types
// ---------------------------------------------------------------------------

// Signal is a proposed trade action produced by a signal source. It is
// immutable once emitted; the engine consumes it exactly once, either by
// placing an order or by discarding it as invalid.
type Signal struct {
	Symbol    string       `json:"symbol"`
	Action    SignalAction `json:"action"`
	Price     float64      `json:"price"`      // entry reference price
	StopLevel float64      `json:"stop_level"` // strategy-defined stop
	Source    string       `json:"source"`     // capital-pool / strategy tag
	CreatedAt time.Time    `json:"created_at"`
}

// TrackedPosition is the engine's internal record of a held position's entry
// and stop, independent of the broker's own records. The broker does not
// persist strategy-defined stops, so this record is authoritative for risk.
type TrackedPosition struct {
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entry_price"`
	StopLevel  float64   `json:"stop_level"`
	Source     string    `json:"source"`
	OpenedAt   time.Time `json:"opened_at"`
}

// ---------------------------------------------------------------------------
// Broker views (read-only snapshots, owned by the brokerage)
// ---------------------------------------------------------------------------

// BrokerOrder is a read-only view of an order as the broker reports it.
type BrokerOrder struct {
	ID             string      `json:"id"`
	Symbol         string      `json:"symbol"`
	Side           OrderSide   `json:"side"`
	Status         OrderStatus `json:"status"`
	Qty            float64     `json:"qty"`
	LimitPrice     float64     `json:"limit_price"`      // 0 for market orders
	FilledAvgPrice float64     `json:"filled_avg_price"` // 0 until filled
	UpdatedAt      time.Time   `json:"updated_at"`
}

// BrokerPosition is a read-only view of a position as the broker reports it.
// Qty is signed: positive long, negative short.
type BrokerPosition struct {
	Symbol string  `json:"symbol"`
	Qty    float64 `json:"qty"`
}

// AccountInfo is a snapshot of the brokerage account's financial metrics.
type AccountInfo struct {
	Equity      float64 `json:"equity"`
	LastEquity  float64 `json:"last_equity"`
	Cash        float64 `json:"cash"`
	BuyingPower float64 `json:"buying_power"`
}

// PnL returns the profit and loss of the account relative to the given
// capital base.
func (a AccountInfo) PnL(capitalBase float64) float64 {
	return a.Equity - capitalBase
}
