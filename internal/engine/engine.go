package engine

import (
	"context"
	"log/slog"
	"time"

	"helmsman/internal/broker"
	"helmsman/internal/config"
	"helmsman/internal/signal"
)

// Refresher is implemented by holiday sources that cache a remote market
// calendar and need periodic refresh (see broker.AlpacaHolidaySource).
type Refresher interface {
	Refresh(ctx context.Context, days int) error
}

// Engine drives the trading heartbeat: one reconciliation cycle per tick,
// preceded by the drawdown kill switch and the mandatory-liquidation check.
// All trading state is owned by the engine's collaborators and mutated from
// this single loop.
type Engine struct {
	gw        broker.Gateway
	lifecycle *Lifecycle
	scheduler *Scheduler
	queue     *signal.Queue
	stops     *StopTracker
	cfg       config.TradingConfig
	refresher Refresher // may be nil
	now       func() time.Time

	calendarRefreshed time.Time

	log *slog.Logger
}

// NewEngine assembles the engine. refresher may be nil when the holiday
// source is static.
func NewEngine(
	gw broker.Gateway,
	lifecycle *Lifecycle,
	scheduler *Scheduler,
	queue *signal.Queue,
	stops *StopTracker,
	cfg config.TradingConfig,
	refresher Refresher,
	log *slog.Logger,
) *Engine {
	return &Engine{
		gw:        gw,
		lifecycle: lifecycle,
		scheduler: scheduler,
		queue:     queue,
		stops:     stops,
		cfg:       cfg,
		refresher: refresher,
		now:       time.Now,
		log:       log.With("component", "engine"),
	}
}

// Run executes reconciliation cycles at the configured interval until ctx is
// cancelled. The first cycle runs immediately.
func (e *Engine) Run(ctx context.Context) error {
	interval := time.Duration(e.cfg.CycleIntervalSecs) * time.Second
	e.log.Info("engine started",
		"gateway", e.gw.Name(), "interval", interval,
		"tracked", e.stops.Len(), "pending", e.queue.Len())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.RunCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped")
			return ctx.Err()
		case <-ticker.C:
			e.RunCycle(ctx)
		}
	}
}

// RunCycle executes one full cycle: refresh the market calendar if stale,
// check the drawdown kill switch, check the mandatory-liquidation calendar,
// then either liquidate everything or reconcile the order lifecycle. A cycle
// never returns an error; every failure inside it is contained and logged.
func (e *Engine) RunCycle(ctx context.Context) {
	start := time.Now()
	e.refreshCalendar(ctx)

	if e.checkDrawdown(ctx) {
		e.liquidateAll(ctx, "max total drawdown reached")
		return
	}

	if e.scheduler.IsMandatoryLiquidationDue(e.now()) {
		e.liquidateAll(ctx, "mandatory liquidation before market closure")
		return
	}

	consumed := e.lifecycle.Reconcile(ctx, e.queue.Pending())
	e.queue.Consume(ctx, consumed)

	e.log.Debug("cycle complete",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"consumed", len(consumed), "tracked", e.stops.Len(), "pending", e.queue.Len())
}

// checkDrawdown reports whether total drawdown has hit the kill-switch
// threshold. An account fetch failure disables the check for this cycle
// rather than halting trading.
func (e *Engine) checkDrawdown(ctx context.Context) bool {
	timeout := time.Duration(e.cfg.GatewayTimeoutSecs) * time.Second
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	acct, err := e.gw.GetAccount(cctx)
	if err != nil {
		e.log.Error("fetching account, drawdown check skipped this cycle", "error", err)
		return false
	}

	pnl := acct.PnL(e.cfg.TotalRiskCapital)
	if IsDrawdownBreached(pnl, e.cfg.TotalRiskCapital, e.cfg.MaxTotalDrawdownPct) {
		e.log.Warn("total drawdown threshold reached",
			"pnl", pnl, "capital_base", e.cfg.TotalRiskCapital,
			"max_drawdown_pct", e.cfg.MaxTotalDrawdownPct)
		return true
	}
	return false
}

// liquidateAll closes every tracked position and discards every pending
// signal. Stale signals must not execute after a forced flat.
func (e *Engine) liquidateAll(ctx context.Context, reason string) {
	e.log.Warn("liquidating all positions", "reason", reason,
		"tracked", e.stops.Len(), "pending", e.queue.Len())

	e.lifecycle.CloseAll(ctx, reason)

	for _, sig := range e.queue.Snapshot() {
		e.queue.Remove(ctx, sig.Symbol)
	}
}

// refreshCalendar refreshes a remote holiday calendar at most once a day.
func (e *Engine) refreshCalendar(ctx context.Context) {
	if e.refresher == nil {
		return
	}
	if time.Since(e.calendarRefreshed) < 24*time.Hour {
		return
	}
	// Fetch well beyond the lookahead so a refresh failure tomorrow still
	// leaves usable data.
	if err := e.refresher.Refresh(ctx, 30); err != nil {
		e.log.Error("refreshing market calendar", "error", err)
		return
	}
	e.calendarRefreshed = time.Now()
}
