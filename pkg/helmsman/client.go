// Package helmsman provides a small HTTP client for the helmsman REST API.
package helmsman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a running helmsman server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8090".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// TrackedPosition mirrors the server's tracked-position JSON.
type TrackedPosition struct {
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entry_price"`
	StopLevel  float64   `json:"stop_level"`
	Source     string    `json:"source"`
	OpenedAt   time.Time `json:"opened_at"`
}

// Signal mirrors the server's pending-signal JSON.
type Signal struct {
	Symbol    string    `json:"symbol"`
	Action    string    `json:"action"`
	Price     float64   `json:"price"`
	StopLevel float64   `json:"stop_level"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Event mirrors the server's journal-event JSON.
type Event struct {
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

// Account mirrors the server's account JSON.
type Account struct {
	Gateway     string  `json:"gateway"`
	Equity      float64 `json:"equity"`
	LastEquity  float64 `json:"last_equity"`
	Cash        float64 `json:"cash"`
	BuyingPower float64 `json:"buying_power"`
	PnL         float64 `json:"pnl"`
}

type positionsResponse struct {
	Positions []TrackedPosition `json:"positions"`
}

type signalsResponse struct {
	Signals []Signal `json:"signals"`
}

type eventsResponse struct {
	Events []Event `json:"events"`
}

// Positions returns the engine's tracked positions.
func (c *Client) Positions(ctx context.Context) ([]TrackedPosition, error) {
	var resp positionsResponse
	if err := c.get(ctx, "/api/positions", &resp); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// Signals returns the pending signals.
func (c *Client) Signals(ctx context.Context) ([]Signal, error) {
	var resp signalsResponse
	if err := c.get(ctx, "/api/signals", &resp); err != nil {
		return nil, err
	}
	return resp.Signals, nil
}

// SubmitSignal admits a signal for execution.
func (c *Client) SubmitSignal(ctx context.Context, sig Signal) error {
	body, err := json.Marshal(sig)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/signals", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return apiError(resp)
	}
	return nil
}

// DeleteSignal withdraws a pending signal.
func (c *Client) DeleteSignal(ctx context.Context, symbol string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/signals/"+url.PathEscape(symbol), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

// Account returns the broker account snapshot.
func (c *Client) Account(ctx context.Context) (Account, error) {
	var acct Account
	if err := c.get(ctx, "/api/account", &acct); err != nil {
		return Account{}, err
	}
	return acct, nil
}

// Events returns the execution journal for a day. A zero day means today.
func (c *Client) Events(ctx context.Context, day time.Time) ([]Event, error) {
	path := "/api/events"
	if !day.IsZero() {
		path += "?date=" + day.Format("2006-01-02")
	}
	var resp eventsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
