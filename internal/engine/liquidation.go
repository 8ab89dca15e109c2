package engine

import (
	"log/slog"
	"time"

	"helmsman/internal/util"
)

// Scheduler decides when the calendar or the account's drawdown requires
// forced full liquidation. Both checks are pure predicates; the engine
// decides what "liquidate everything" means operationally.
type Scheduler struct {
	holidays      util.HolidaySource
	lookaheadDays int
	log           *slog.Logger
}

// NewScheduler creates a Scheduler using the given holiday source and
// lookahead window (days ahead scanned for full-closure holidays).
func NewScheduler(holidays util.HolidaySource, lookaheadDays int, log *slog.Logger) *Scheduler {
	return &Scheduler{
		holidays:      holidays,
		lookaheadDays: lookaheadDays,
		log:           log.With("component", "liquidation-scheduler"),
	}
}

// IsMandatoryLiquidationDue reports whether today is the last trading day
// before a weekend or a full-market-closure holiday inside the lookahead
// window. The scan stops at the first weekend day: holidays beyond a weekend
// belong to the following week's decision.
func (s *Scheduler) IsMandatoryLiquidationDue(today time.Time) bool {
	if today.Weekday() == time.Friday {
		s.log.Info("liquidation check: Friday detected")
		return true
	}

	for i := 1; i <= s.lookaheadDays; i++ {
		next := today.AddDate(0, 0, i)

		if s.holidays.IsHoliday(next) {
			s.log.Info("liquidation check: upcoming market closure",
				"date", next.Format("2006-01-02"))
			return true
		}

		if next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
			break
		}
	}
	return false
}

// IsDrawdownBreached reports whether total drawdown has reached the
// kill-switch threshold. The comparison is boundary-inclusive: a drawdown
// exactly at maxDrawdownPct breaches.
func IsDrawdownBreached(currentPnL, capitalBase, maxDrawdownPct float64) bool {
	if capitalBase <= 0 {
		return false
	}
	currentValue := capitalBase + currentPnL
	drawdownPct := (capitalBase - currentValue) / capitalBase
	return drawdownPct >= maxDrawdownPct
}
