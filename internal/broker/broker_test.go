package broker

import (
	"context"
	"log/slog"
	"testing"

	"helmsman/internal/domain"
)

func TestAlpacaGatewayName(t *testing.T) {
	g := NewAlpacaGateway("key", "secret", "https://paper-api.alpaca.markets", "", slog.Default())
	if got := g.Name(); got != "alpaca" {
		t.Errorf("AlpacaGateway.Name() = %q, want %q", got, "alpaca")
	}
}

func TestConvertStatus(t *testing.T) {
	cases := []struct {
		in   string
		want domain.OrderStatus
	}{
		{"filled", domain.OrderStatusFilled},
		{"canceled", domain.OrderStatusCancelled},
		{"expired", domain.OrderStatusCancelled},
		{"rejected", domain.OrderStatusCancelled},
		{"new", domain.OrderStatusSubmitted},
		{"accepted", domain.OrderStatusSubmitted},
		{"partially_filled", domain.OrderStatusSubmitted},
	}
	for _, tc := range cases {
		if got := convertStatus(tc.in); got != tc.want {
			t.Errorf("convertStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSimulatorFillsLimitOrders(t *testing.T) {
	g := NewSimulatorGateway(100000)
	ctx := context.Background()

	order, err := g.PlaceOrder(ctx, "AAPL", domain.OrderSideBuy, 100, 187.20)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.Status != domain.OrderStatusFilled {
		t.Errorf("order.Status = %q, want filled", order.Status)
	}
	if order.FilledAvgPrice != 187.20 {
		t.Errorf("FilledAvgPrice = %v, want 187.20", order.FilledAvgPrice)
	}

	positions, err := g.GetPositions(ctx)
	if err != nil {
		t.Fatalf("GetPositions: %v", err)
	}
	if len(positions) != 1 || positions[0].Symbol != "AAPL" || positions[0].Qty != 100 {
		t.Errorf("positions = %+v, want AAPL qty 100", positions)
	}

	trades, err := g.GetTrades(ctx)
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("GetTrades returned %d orders, want 1", len(trades))
	}

	// Filled orders are not open.
	open, err := g.GetOpenOrders(ctx)
	if err != nil {
		t.Fatalf("GetOpenOrders: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("GetOpenOrders returned %d, want 0", len(open))
	}
}

func TestSimulatorSellClosesPosition(t *testing.T) {
	g := NewSimulatorGateway(100000)
	ctx := context.Background()
	g.SetPrice("TSLA", 244.00)

	if _, err := g.PlaceOrder(ctx, "TSLA", domain.OrderSideBuy, 50, 244.00); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := g.PlaceMarketOrder(ctx, "TSLA", domain.OrderSideSell, 50); err != nil {
		t.Fatalf("PlaceMarketOrder: %v", err)
	}

	positions, _ := g.GetPositions(ctx)
	if len(positions) != 0 {
		t.Errorf("positions after round trip = %+v, want empty", positions)
	}

	acct, err := g.GetAccount(ctx)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acct.Equity != 100000 {
		t.Errorf("Equity = %v, want 100000 (flat round trip)", acct.Equity)
	}
}

func TestSimulatorPriceLookup(t *testing.T) {
	g := NewSimulatorGateway(100000)
	ctx := context.Background()

	if _, ok, err := g.GetCurrentPrice(ctx, "MSFT"); ok || err != nil {
		t.Errorf("unknown symbol: ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	g.SetPrice("MSFT", 415.33)
	price, ok, err := g.GetCurrentPrice(ctx, "MSFT")
	if err != nil || !ok || price != 415.33 {
		t.Errorf("GetCurrentPrice = (%v, %v, %v), want (415.33, true, nil)", price, ok, err)
	}
}

func TestSimulatorRejectsBadQty(t *testing.T) {
	g := NewSimulatorGateway(100000)
	ctx := context.Background()

	if _, err := g.PlaceOrder(ctx, "AAPL", domain.OrderSideBuy, 0, 100); err == nil {
		t.Error("PlaceOrder with zero qty should error")
	}
	if _, err := g.PlaceMarketOrder(ctx, "AAPL", domain.OrderSideSell, -5); err == nil {
		t.Error("PlaceMarketOrder with negative qty should error")
	}
}
