// Package httpapi provides the HTTP REST API over the engine's state:
// tracked positions, pending signals, the account snapshot, and the
// execution journal.
package httpapi

import (
	"time"

	"helmsman/internal/domain"
	"helmsman/internal/store"
)

// PositionsResponse lists tracked positions.
type PositionsResponse struct {
	Count     int                      `json:"count"`
	Positions []domain.TrackedPosition `json:"positions"`
}

// SignalsResponse lists pending signals.
type SignalsResponse struct {
	Count   int             `json:"count"`
	Signals []domain.Signal `json:"signals"`
}

// SubmitSignalRequest is the POST /api/signals body.
type SubmitSignalRequest struct {
	Symbol    string  `json:"symbol"`
	Action    string  `json:"action"`
	Price     float64 `json:"price"`
	StopLevel float64 `json:"stop_level"`
	Source    string  `json:"source"`
}

// EventJSON is a single journal event.
type EventJSON struct {
	Time   time.Time `json:"time"`
	Type   string    `json:"type"`
	Symbol string    `json:"symbol"`
	Side   string    `json:"side,omitempty"`
	Qty    float64   `json:"qty,omitempty"`
	Price  float64   `json:"price,omitempty"`
	Stop   float64   `json:"stop,omitempty"`
	Source string    `json:"source,omitempty"`
	Note   string    `json:"note,omitempty"`
}

// EventsResponse lists journal events for one day.
type EventsResponse struct {
	Date   string      `json:"date"`
	Count  int         `json:"count"`
	Events []EventJSON `json:"events"`
}

// AccountResponse is the broker account snapshot.
type AccountResponse struct {
	Gateway     string  `json:"gateway"`
	Equity      float64 `json:"equity"`
	LastEquity  float64 `json:"last_equity"`
	Cash        float64 `json:"cash"`
	BuyingPower float64 `json:"buying_power"`
	PnL         float64 `json:"pnl"`
}

func convertEvent(evt store.JournalEvent) EventJSON {
	return EventJSON{
		Time:   evt.Time,
		Type:   string(evt.Type),
		Symbol: evt.Symbol,
		Side:   string(evt.Side),
		Qty:    evt.Qty,
		Price:  evt.Price,
		Stop:   evt.Stop,
		Source: evt.Source,
		Note:   evt.Note,
	}
}
