// Package broker defines the Gateway interface the engine reconciles
// against, and provides implementations for the Alpaca brokerage and an
// in-memory paper-trading simulator.
package broker

import (
	"context"

	"helmsman/internal/domain"
)

// Gateway abstracts the brokerage capability set the engine consumes. All
// methods are synchronous; callers bound each call with a context deadline
// and must treat a failed call as "data unavailable this cycle", never as a
// reason to abort the cycle.
type Gateway interface {
	// Name returns the gateway identifier (e.g. "alpaca", "simulator").
	Name() string

	// GetOpenOrders returns all orders currently resting at the broker.
	GetOpenOrders(ctx context.Context) ([]domain.BrokerOrder, error)

	// GetTrades returns today's order activity, including filled and
	// cancelled orders, so the engine can absorb fills and cancellations.
	GetTrades(ctx context.Context) ([]domain.BrokerOrder, error)

	// GetPositions returns all current positions. Qty is signed.
	GetPositions(ctx context.Context) ([]domain.BrokerPosition, error)

	// GetCurrentPrice returns the latest trade price for a symbol. The
	// second result is false when the broker has no price for the symbol;
	// a non-nil error indicates the gateway call itself failed.
	GetCurrentPrice(ctx context.Context, symbol string) (float64, bool, error)

	// PlaceOrder submits a day limit order.
	PlaceOrder(ctx context.Context, symbol string, side domain.OrderSide, qty float64, limitPrice float64) (*domain.BrokerOrder, error)

	// PlaceMarketOrder submits a market order. The engine uses it only as
	// the escape hatch when a closing limit order cannot be priced.
	PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, qty float64) (*domain.BrokerOrder, error)

	// GetAccount returns a snapshot of the account's financial metrics.
	GetAccount(ctx context.Context) (*domain.AccountInfo, error)
}
