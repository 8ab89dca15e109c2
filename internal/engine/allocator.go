// Package engine implements the execution and risk core: position sizing,
// internal stop tracking, the order-lifecycle reconciliation loop, and
// mandatory-liquidation scheduling.
package engine

import (
	"log/slog"
	"math"

	"helmsman/internal/config"
	"helmsman/internal/domain"
)

// Allocator converts a signal's entry and stop levels into an order quantity
// under the per-source capital allocation. It is a pure function of its
// inputs and the static capital-pool table.
type Allocator struct {
	pools              map[string]float64
	defaultPool        string
	totalRiskCapital   float64
	maxRiskPerTradePct float64
	log                *slog.Logger
}

// NewAllocator creates an Allocator from the trading configuration.
func NewAllocator(cfg config.TradingConfig, log *slog.Logger) *Allocator {
	return &Allocator{
		pools:              cfg.CapitalPools,
		defaultPool:        cfg.DefaultPool,
		totalRiskCapital:   cfg.TotalRiskCapital,
		maxRiskPerTradePct: cfg.MaxRiskPerTradePct,
		log:                log.With("component", "allocator"),
	}
}

// Quantity returns the number of shares to order for a signal, or 0 when the
// signal cannot be sized: non-positive risk per share, or a pool too small
// to afford a single share.
//
// The risk budget is poolFraction × totalRiskCapital × maxRiskPerTradePct;
// shares are floor(budget / riskPerShare), scaled down if the resulting
// notional exceeds the pool's capital.
func (a *Allocator) Quantity(source string, action domain.SignalAction, entryPrice, stopLevel float64) int {
	if entryPrice <= 0 {
		a.log.Warn("invalid entry price", "source", source, "entry", entryPrice)
		return 0
	}

	riskPerShare := entryPrice - stopLevel
	if action == domain.SignalActionSell {
		riskPerShare = stopLevel - entryPrice
	}
	if riskPerShare <= 0 {
		a.log.Warn("risk per share not positive, signal rejected",
			"source", source, "action", action, "entry", entryPrice, "stop", stopLevel)
		return 0
	}

	fraction, ok := a.pools[source]
	if !ok {
		fraction = a.pools[a.defaultPool]
		a.log.Warn("unknown signal source, using default capital pool",
			"source", source, "default_pool", a.defaultPool)
	}

	poolCapital := fraction * a.totalRiskCapital
	maxRiskAmount := poolCapital * a.maxRiskPerTradePct
	shares := math.Floor(maxRiskAmount / riskPerShare)

	// Scale down when the notional exceeds the pool's capital.
	if shares*entryPrice > poolCapital {
		shares = math.Floor(poolCapital / entryPrice)
		a.log.Warn("scaling down position size to pool capital",
			"source", source, "entry", entryPrice, "shares", shares)
	}

	if shares <= 0 {
		return 0
	}
	return int(shares)
}
