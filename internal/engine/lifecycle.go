package engine

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"helmsman/internal/broker"
	"helmsman/internal/domain"
	"helmsman/internal/store"
	"helmsman/internal/util"
)

// EventSink receives execution events as they happen (fills, entries,
// liquidations). The live feed implements it; a nil sink disables publishing.
type EventSink interface {
	Publish(evt store.JournalEvent)
}

// Lifecycle is the order-lifecycle reconciliation loop. Each cycle it
// absorbs broker-reported fills and cancellations, places entry orders for
// still-pending signals, and evaluates internal stops against current
// prices, in that fixed order: absorption must run before placement or a
// filled entry could be placed again.
//
// Lifecycle state is mutated only from within a cycle on a single
// goroutine; the caller guarantees cycles never overlap.
type Lifecycle struct {
	gw          broker.Gateway
	alloc       *Allocator
	stops       *StopTracker
	journal     store.Journal // may be nil
	sink        EventSink     // may be nil
	tickOffset  float64
	callTimeout time.Duration

	// pendingClose holds positions optimistically removed from the tracker
	// after a closing order was submitted. If the broker later reports the
	// closing order cancelled, the position is re-admitted to tracking.
	pendingClose map[string]domain.TrackedPosition

	log *slog.Logger
}

// NewLifecycle wires the reconciliation loop. journal and sink may be nil.
func NewLifecycle(
	gw broker.Gateway,
	alloc *Allocator,
	stops *StopTracker,
	journal store.Journal,
	sink EventSink,
	tickOffset float64,
	callTimeout time.Duration,
	log *slog.Logger,
) *Lifecycle {
	return &Lifecycle{
		gw:           gw,
		alloc:        alloc,
		stops:        stops,
		journal:      journal,
		sink:         sink,
		tickOffset:   tickOffset,
		callTimeout:  callTimeout,
		pendingClose: make(map[string]domain.TrackedPosition),
		log:          log.With("component", "lifecycle"),
	}
}

// Reconcile runs one reconciliation pass over the pending signals and
// returns the symbols of signals fully consumed this cycle, so the caller
// can evict them from its queue. No failure inside a cycle escapes: every
// gateway call is individually bounded and logged, and the cycle continues
// with the remaining symbols.
func (m *Lifecycle) Reconcile(ctx context.Context, pending map[string]domain.Signal) []string {
	consumed := make(map[string]bool)
	justRecorded := make(map[string]bool)
	var events []store.JournalEvent

	// Positions snapshot, taken once per cycle. Fills absorbed below may not
	// be reflected in it yet; justRecorded covers that window.
	positions, posOK := m.fetchPositions(ctx)

	// ------------------------------------------------------------------
	// Step 1: fill/cancel absorption.
	// ------------------------------------------------------------------
	trades, err := m.fetchTrades(ctx)
	if err != nil {
		m.log.Error("fetching trades, skipping absorption this cycle", "error", err)
	} else {
		for _, tr := range trades {
			// Closing orders first: a cancelled close re-admits the position.
			if pc, ok := m.pendingClose[tr.Symbol]; ok {
				switch tr.Status {
				case domain.OrderStatusFilled:
					delete(m.pendingClose, tr.Symbol)
					m.log.Info("closing order filled", "symbol", tr.Symbol, "price", tr.FilledAvgPrice)
				case domain.OrderStatusCancelled:
					delete(m.pendingClose, tr.Symbol)
					m.stops.Record(ctx, pc)
					justRecorded[tr.Symbol] = true
					m.log.Warn("closing order cancelled, position re-admitted to tracking",
						"symbol", tr.Symbol, "stop", pc.StopLevel)
					events = append(events, store.JournalEvent{
						Time: time.Now(), Type: store.JournalCloseReadmit,
						Symbol: tr.Symbol, Stop: pc.StopLevel, Price: pc.EntryPrice,
						Source: pc.Source,
					})
				}
				continue
			}

			sig, ok := pending[tr.Symbol]
			if !ok || consumed[tr.Symbol] {
				continue
			}

			switch tr.Status {
			case domain.OrderStatusFilled:
				// The broker's average fill price is authoritative over the
				// signal's reference price.
				pos := domain.TrackedPosition{
					Symbol:     tr.Symbol,
					EntryPrice: tr.FilledAvgPrice,
					StopLevel:  sig.StopLevel,
					Source:     sig.Source,
					OpenedAt:   time.Now(),
				}
				m.stops.Record(ctx, pos)
				justRecorded[tr.Symbol] = true
				consumed[tr.Symbol] = true
				m.log.Info("entry filled, position tracked",
					"symbol", tr.Symbol, "entry", tr.FilledAvgPrice, "stop", sig.StopLevel,
					"source", sig.Source)
				events = append(events, store.JournalEvent{
					Time: time.Now(), Type: store.JournalFill,
					Symbol: tr.Symbol, Side: tr.Side, Qty: tr.Qty,
					Price: tr.FilledAvgPrice, Stop: sig.StopLevel, Source: sig.Source,
				})
			case domain.OrderStatusCancelled:
				consumed[tr.Symbol] = true
				m.log.Info("entry order cancelled, signal discarded", "symbol", tr.Symbol)
				events = append(events, store.JournalEvent{
					Time: time.Now(), Type: store.JournalCancel,
					Symbol: tr.Symbol, Side: tr.Side, Source: sig.Source,
				})
			}
		}
	}

	// ------------------------------------------------------------------
	// Step 2: new entry placement.
	// ------------------------------------------------------------------
	openOrders, err := m.fetchOpenOrders(ctx)
	switch {
	case err != nil:
		m.log.Error("fetching open orders, skipping entry placement this cycle", "error", err)
	case !posOK:
		m.log.Error("positions unavailable, skipping entry placement this cycle")
	default:
		active := make(map[string]bool, len(openOrders))
		for _, o := range openOrders {
			active[o.Symbol] = true
		}

		for _, sym := range sortedSymbols(pending) {
			if consumed[sym] {
				continue
			}
			if _, tracked := m.stops.Get(sym); tracked {
				continue
			}
			if active[sym] || positions[sym] != 0 {
				continue
			}

			sig := pending[sym]
			qty := m.alloc.Quantity(sig.Source, sig.Action, sig.Price, sig.StopLevel)
			if qty == 0 {
				// Invalid signal; never retried for that value.
				consumed[sym] = true
				m.log.Warn("signal dropped, no viable quantity",
					"symbol", sym, "entry", sig.Price, "stop", sig.StopLevel, "source", sig.Source)
				continue
			}

			side := domain.OrderSideBuy
			if sig.Action == domain.SignalActionSell {
				side = domain.OrderSideSell
			}

			cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
			order, err := m.gw.PlaceOrder(cctx, sym, side, float64(qty), sig.Price)
			cancel()
			if err != nil {
				// Signal stays pending; retried next cycle.
				m.log.Error("placing entry order", "symbol", sym, "error", err)
				continue
			}

			m.log.Info("entry order placed",
				"symbol", sym, "side", side, "qty", qty, "limit", sig.Price, "order_id", order.ID)
			events = append(events, store.JournalEvent{
				Time: time.Now(), Type: store.JournalEntryPlaced,
				Symbol: sym, Side: side, Qty: float64(qty),
				Price: sig.Price, Stop: sig.StopLevel, Source: sig.Source,
			})
		}
	}

	// ------------------------------------------------------------------
	// Step 3: stop-loss evaluation.
	// ------------------------------------------------------------------
	if !posOK {
		m.log.Error("positions unavailable, skipping stop evaluation this cycle")
	} else {
		for _, tp := range m.stops.All() {
			qty := positions[tp.Symbol]

			if qty == 0 {
				if justRecorded[tp.Symbol] {
					// Fill from this cycle; the position snapshot predates it.
					continue
				}
				m.stops.Remove(ctx, tp.Symbol)
				m.log.Warn("broker reports no position, tracking dropped", "symbol", tp.Symbol)
				events = append(events, store.JournalEvent{
					Time: time.Now(), Type: store.JournalPositionGone,
					Symbol: tp.Symbol, Stop: tp.StopLevel, Source: tp.Source,
				})
				continue
			}

			price, ok, err := m.fetchPrice(ctx, tp.Symbol)
			if err != nil {
				m.log.Error("price lookup failed, skipping symbol this cycle",
					"symbol", tp.Symbol, "error", err)
				continue
			}
			if !ok {
				m.log.Error("price unavailable, skipping symbol this cycle", "symbol", tp.Symbol)
				continue
			}

			breached := (qty > 0 && price < tp.StopLevel) || (qty < 0 && price > tp.StopLevel)
			if !breached {
				continue
			}

			m.log.Warn("stop breached",
				"symbol", tp.Symbol, "price", price, "stop", tp.StopLevel, "qty", qty)
			if evt, ok := m.closePosition(ctx, tp, qty, price, "stop breach"); ok {
				events = append(events, evt)
			}
		}
	}

	m.flush(ctx, events)

	out := make([]string, 0, len(consumed))
	for sym := range consumed {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// CloseAll submits closing orders for every tracked position, sized to the
// broker-reported quantity. Used for mandatory liquidation and the drawdown
// kill switch. Symbols whose close cannot be submitted remain tracked and
// are retried next cycle.
func (m *Lifecycle) CloseAll(ctx context.Context, reason string) {
	positions, posOK := m.fetchPositions(ctx)
	if !posOK {
		m.log.Error("positions unavailable, cannot liquidate this cycle", "reason", reason)
		return
	}

	var events []store.JournalEvent
	for _, tp := range m.stops.All() {
		qty := positions[tp.Symbol]
		if qty == 0 {
			m.stops.Remove(ctx, tp.Symbol)
			m.log.Info("no broker position to liquidate, tracking dropped", "symbol", tp.Symbol)
			continue
		}

		price, ok, err := m.fetchPrice(ctx, tp.Symbol)
		if err != nil || !ok {
			// Escape hatch: the position must not be left unmanaged into a
			// closure, so fall back to an unconditional market order.
			if evt, closed := m.closeAtMarket(ctx, tp, qty, reason); closed {
				events = append(events, evt)
			}
			continue
		}

		if evt, closed := m.closePosition(ctx, tp, qty, price, reason); closed {
			events = append(events, evt)
		}
	}

	m.flush(ctx, events)
}

// closePosition submits a closing limit order offset from the current price
// by the tick offset in the direction that favors a quick fill, falling back
// to a market order if the limit submission fails. On success the symbol is
// optimistically removed from tracking and parked in pendingClose.
func (m *Lifecycle) closePosition(ctx context.Context, tp domain.TrackedPosition, qty, price float64, reason string) (store.JournalEvent, bool) {
	side := domain.OrderSideSell
	limit := price - m.tickOffset
	if qty < 0 {
		side = domain.OrderSideBuy
		limit = price + m.tickOffset
	}
	closeQty := math.Abs(qty)

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	_, err := m.gw.PlaceOrder(cctx, tp.Symbol, side, closeQty, limit)
	cancel()
	if err != nil {
		m.log.Error("closing limit order failed, trying market",
			"symbol", tp.Symbol, "error", err)

		cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
		_, merr := m.gw.PlaceMarketOrder(cctx, tp.Symbol, side, closeQty)
		cancel()
		if merr != nil {
			// Position stays tracked so the next cycle retries liquidation.
			m.log.Log(ctx, util.LevelCritical, "cannot place any closing order, position remains tracked",
				"symbol", tp.Symbol, "qty", qty, "stop", tp.StopLevel, "error", merr)
			return store.JournalEvent{}, false
		}
	}

	m.stops.Remove(ctx, tp.Symbol)
	m.pendingClose[tp.Symbol] = tp
	m.log.Info("closing order submitted",
		"symbol", tp.Symbol, "side", side, "qty", closeQty, "limit", limit, "reason", reason)
	return store.JournalEvent{
		Time: time.Now(), Type: store.JournalLiquidation,
		Symbol: tp.Symbol, Side: side, Qty: closeQty,
		Price: limit, Stop: tp.StopLevel, Source: tp.Source, Note: reason,
	}, true
}

// closeAtMarket is the no-price escape hatch: an unconditional market order,
// logged at CRITICAL because the fill price is unbounded.
func (m *Lifecycle) closeAtMarket(ctx context.Context, tp domain.TrackedPosition, qty float64, reason string) (store.JournalEvent, bool) {
	side := domain.OrderSideSell
	if qty < 0 {
		side = domain.OrderSideBuy
	}
	closeQty := math.Abs(qty)

	m.log.Log(ctx, util.LevelCritical, "price unavailable, closing at market",
		"symbol", tp.Symbol, "qty", qty, "reason", reason)

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	_, err := m.gw.PlaceMarketOrder(cctx, tp.Symbol, side, closeQty)
	cancel()
	if err != nil {
		m.log.Log(ctx, util.LevelCritical, "cannot place any closing order, position remains tracked",
			"symbol", tp.Symbol, "qty", qty, "stop", tp.StopLevel, "error", err)
		return store.JournalEvent{}, false
	}

	m.stops.Remove(ctx, tp.Symbol)
	m.pendingClose[tp.Symbol] = tp
	return store.JournalEvent{
		Time: time.Now(), Type: store.JournalLiquidation,
		Symbol: tp.Symbol, Side: side, Qty: closeQty,
		Stop: tp.StopLevel, Source: tp.Source, Note: reason + " (market)",
	}, true
}

// ---------------------------------------------------------------------------
// Gateway fetch helpers (each call individually bounded)
// ---------------------------------------------------------------------------

func (m *Lifecycle) fetchPositions(ctx context.Context) (map[string]float64, bool) {
	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	positions, err := m.gw.GetPositions(cctx)
	if err != nil {
		m.log.Error("fetching positions", "error", err)
		return nil, false
	}
	out := make(map[string]float64, len(positions))
	for _, p := range positions {
		out[p.Symbol] = p.Qty
	}
	return out, true
}

func (m *Lifecycle) fetchTrades(ctx context.Context) ([]domain.BrokerOrder, error) {
	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	return m.gw.GetTrades(cctx)
}

func (m *Lifecycle) fetchOpenOrders(ctx context.Context) ([]domain.BrokerOrder, error) {
	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	return m.gw.GetOpenOrders(cctx)
}

func (m *Lifecycle) fetchPrice(ctx context.Context, symbol string) (float64, bool, error) {
	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	return m.gw.GetCurrentPrice(cctx, symbol)
}

// flush journals and publishes the cycle's events. Failures are logged and
// never affect the cycle's outcome.
func (m *Lifecycle) flush(ctx context.Context, events []store.JournalEvent) {
	if len(events) == 0 {
		return
	}
	if m.journal != nil {
		if err := m.journal.Append(ctx, events); err != nil {
			m.log.Error("journaling events", "count", len(events), "error", err)
		}
	}
	if m.sink != nil {
		for _, evt := range events {
			m.sink.Publish(evt)
		}
	}
}

func sortedSymbols(pending map[string]domain.Signal) []string {
	out := make([]string, 0, len(pending))
	for sym := range pending {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
