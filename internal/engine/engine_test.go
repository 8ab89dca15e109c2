package engine

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"helmsman/internal/domain"
	"helmsman/internal/signal"
)

func newTestEngine(gw *fakeGateway, holidays stubHolidaySource) (*Engine, *StopTracker, *signal.Queue) {
	log := slog.Default()
	cfg := testTradingConfig()
	stops := NewStopTracker(nil, log)
	alloc := NewAllocator(cfg, log)
	lc := NewLifecycle(gw, alloc, stops, nil, nil, cfg.TickOffset, 5*time.Second, log)
	sched := NewScheduler(holidays, cfg.LiquidationLookaheadDays, log)
	queue := signal.NewQueue(nil, log)
	eng := NewEngine(gw, lc, sched, queue, stops, cfg, nil, log)
	// Wednesday with no closures ahead unless a test overrides it.
	eng.now = func() time.Time { return date(2026, time.March, 4) }
	return eng, stops, queue
}

func TestRunCycleNormalFlow(t *testing.T) {
	gw := &fakeGateway{
		account: domain.AccountInfo{Equity: 100000},
		trades: []domain.BrokerOrder{{
			ID: "fake-1", Symbol: "AAPL", Side: domain.OrderSideBuy,
			Status: domain.OrderStatusFilled, Qty: 160, FilledAvgPrice: 100.25,
		}},
	}
	eng, stops, queue := newTestEngine(gw, stubHolidaySource{})
	ctx := context.Background()
	if err := queue.Add(ctx, buySignal("AAPL", 100, 95)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	eng.RunCycle(ctx)

	if queue.Len() != 0 {
		t.Errorf("queue.Len = %d after fill absorption, want 0", queue.Len())
	}
	tp, ok := stops.Get("AAPL")
	if !ok || tp.EntryPrice != 100.25 {
		t.Errorf("tracked = %+v ok=%v, want AAPL at fill price 100.25", tp, ok)
	}
}

func TestRunCycleDrawdownKillSwitch(t *testing.T) {
	gw := &fakeGateway{
		// Capital base 100000, max drawdown 20%: equity 80000 breaches.
		account:   domain.AccountInfo{Equity: 80000},
		positions: []domain.BrokerPosition{{Symbol: "AAPL", Qty: 160}},
		prices:    map[string]float64{"AAPL": 104},
	}
	eng, stops, queue := newTestEngine(gw, stubHolidaySource{})
	ctx := context.Background()
	stops.Record(ctx, trackedLong("AAPL", 105, 100))
	if err := queue.Add(ctx, buySignal("TSLA", 240, 230)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	eng.RunCycle(ctx)

	if stops.Len() != 0 {
		t.Errorf("tracked = %d after kill switch, want 0", stops.Len())
	}
	if queue.Len() != 0 {
		t.Errorf("pending = %d after kill switch, want 0 (stale signals discarded)", queue.Len())
	}
	// Only the closing order; no entry for TSLA.
	if len(gw.placed) != 1 || gw.placed[0].Symbol != "AAPL" || gw.placed[0].Side != domain.OrderSideSell {
		t.Errorf("placed = %+v, want a single AAPL closing sell", gw.placed)
	}
}

func TestRunCycleMandatoryLiquidationOnFriday(t *testing.T) {
	gw := &fakeGateway{
		account:   domain.AccountInfo{Equity: 100000},
		positions: []domain.BrokerPosition{{Symbol: "AAPL", Qty: 160}},
		prices:    map[string]float64{"AAPL": 104},
	}
	eng, stops, queue := newTestEngine(gw, stubHolidaySource{})
	ctx := context.Background()
	stops.Record(ctx, trackedLong("AAPL", 105, 100))
	if err := queue.Add(ctx, buySignal("MSFT", 410, 400)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	eng.now = func() time.Time { return date(2026, time.March, 6) } // Friday
	eng.RunCycle(ctx)

	if stops.Len() != 0 {
		t.Errorf("tracked = %d after Friday liquidation, want 0", stops.Len())
	}
	if queue.Len() != 0 {
		t.Errorf("pending = %d after Friday liquidation, want 0", queue.Len())
	}
}

func TestRunCycleAccountFailureDoesNotHalt(t *testing.T) {
	gw := &fakeGateway{acctErr: context.DeadlineExceeded}
	eng, _, queue := newTestEngine(gw, stubHolidaySource{})
	ctx := context.Background()
	if err := queue.Add(ctx, buySignal("AAPL", 100, 95)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	eng.RunCycle(ctx)

	// Drawdown check skipped, normal reconciliation still ran.
	if len(gw.placed) != 1 {
		t.Errorf("placed = %d, want 1 entry despite account fetch failure", len(gw.placed))
	}
}
