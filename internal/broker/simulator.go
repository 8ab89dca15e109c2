package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"helmsman/internal/domain"
)

// Compile-time interface check.
var _ Gateway = (*SimulatorGateway)(nil)

// SimulatorGateway implements Gateway for paper trading without a brokerage
// account. Limit orders fill immediately at their limit price and market
// orders at the last known price, so a fill placed in one reconciliation
// cycle is absorbed in the next, the same shape the live gateway produces.
type SimulatorGateway struct {
	mu        sync.Mutex
	cash      float64
	prices    map[string]float64
	positions map[string]float64
	orders    []domain.BrokerOrder // today's activity, newest last
	nextID    int
}

// NewSimulatorGateway creates a simulator holding the given starting cash.
func NewSimulatorGateway(startingCash float64) *SimulatorGateway {
	return &SimulatorGateway{
		cash:      startingCash,
		prices:    make(map[string]float64),
		positions: make(map[string]float64),
	}
}

// Name returns "simulator".
func (g *SimulatorGateway) Name() string { return "simulator" }

// SetPrice sets the simulated last trade price for a symbol.
func (g *SimulatorGateway) SetPrice(symbol string, price float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prices[symbol] = price
}

// GetOpenOrders returns orders still in submitted state.
func (g *SimulatorGateway) GetOpenOrders(_ context.Context) ([]domain.BrokerOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var open []domain.BrokerOrder
	for _, o := range g.orders {
		if o.Status == domain.OrderStatusSubmitted {
			open = append(open, o)
		}
	}
	return open, nil
}

// GetTrades returns all simulated order activity.
func (g *SimulatorGateway) GetTrades(_ context.Context) ([]domain.BrokerOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.BrokerOrder, len(g.orders))
	copy(out, g.orders)
	return out, nil
}

// GetPositions returns all non-zero simulated positions.
func (g *SimulatorGateway) GetPositions(_ context.Context) ([]domain.BrokerPosition, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []domain.BrokerPosition
	for sym, qty := range g.positions {
		if qty != 0 {
			out = append(out, domain.BrokerPosition{Symbol: sym, Qty: qty})
		}
	}
	return out, nil
}

// GetCurrentPrice returns the simulated last trade price.
func (g *SimulatorGateway) GetCurrentPrice(_ context.Context, symbol string) (float64, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	price, ok := g.prices[symbol]
	return price, ok, nil
}

// PlaceOrder fills a limit order immediately at its limit price.
func (g *SimulatorGateway) PlaceOrder(_ context.Context, symbol string, side domain.OrderSide, qty float64, limitPrice float64) (*domain.BrokerOrder, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("qty must be positive, got %v", qty)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fill(symbol, side, qty, limitPrice, limitPrice)
}

// PlaceMarketOrder fills a market order at the last known price.
func (g *SimulatorGateway) PlaceMarketOrder(_ context.Context, symbol string, side domain.OrderSide, qty float64) (*domain.BrokerOrder, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("qty must be positive, got %v", qty)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	price, ok := g.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("no simulated price for %s", symbol)
	}
	return g.fill(symbol, side, qty, 0, price)
}

// GetAccount computes simulated equity from cash plus marked positions.
func (g *SimulatorGateway) GetAccount(_ context.Context) (*domain.AccountInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	equity := g.cash
	for sym, qty := range g.positions {
		equity += qty * g.prices[sym]
	}
	return &domain.AccountInfo{
		Equity:      equity,
		LastEquity:  equity,
		Cash:        g.cash,
		BuyingPower: g.cash,
	}, nil
}

// fill records the order as filled and adjusts cash and positions. Callers
// hold g.mu.
func (g *SimulatorGateway) fill(symbol string, side domain.OrderSide, qty, limitPrice, fillPrice float64) (*domain.BrokerOrder, error) {
	g.nextID++
	order := domain.BrokerOrder{
		ID:             fmt.Sprintf("sim-%d", g.nextID),
		Symbol:         symbol,
		Side:           side,
		Status:         domain.OrderStatusFilled,
		Qty:            qty,
		LimitPrice:     limitPrice,
		FilledAvgPrice: fillPrice,
		UpdatedAt:      time.Now(),
	}

	signed := qty
	if side == domain.OrderSideSell {
		signed = -qty
	}
	g.positions[symbol] += signed
	g.cash -= signed * fillPrice

	g.orders = append(g.orders, order)
	return &order, nil
}
