package broker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"helmsman/internal/domain"
	"helmsman/internal/util"
)

// Compile-time interface check.
var _ Gateway = (*AlpacaGateway)(nil)

// AlpacaGateway implements Gateway using the Alpaca trading and market-data
// APIs.
type AlpacaGateway struct {
	trading *alpaca.Client
	data    *marketdata.Client
	limiter *util.RateLimiter
	log     *slog.Logger
}

// NewAlpacaGateway creates an AlpacaGateway configured with the given
// credentials and API endpoints. Pass empty URLs for the production defaults.
func NewAlpacaGateway(apiKey, apiSecret, baseURL, dataURL string, log *slog.Logger) *AlpacaGateway {
	dataOpts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		dataOpts.BaseURL = dataURL
	}

	return &AlpacaGateway{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		data:    marketdata.NewClient(dataOpts),
		limiter: util.NewRateLimiter(180),
		log:     log.With("gateway", "alpaca"),
	}
}

// Name returns "alpaca".
func (g *AlpacaGateway) Name() string { return "alpaca" }

// GetOpenOrders returns all resting orders.
func (g *AlpacaGateway) GetOpenOrders(ctx context.Context) ([]domain.BrokerOrder, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	orders, err := g.trading.GetOrders(alpaca.GetOrdersRequest{
		Status: "open",
		Limit:  500,
	})
	if err != nil {
		return nil, fmt.Errorf("GetOrders(open): %w", err)
	}
	return convertOrders(orders), nil
}

// GetTrades returns today's order activity in all states so fills and
// cancellations can be absorbed.
func (g *AlpacaGateway) GetTrades(ctx context.Context) ([]domain.BrokerOrder, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	et, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading ET timezone: %w", err)
	}
	now := time.Now().In(et)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, et)

	orders, err := g.trading.GetOrders(alpaca.GetOrdersRequest{
		Status: "all",
		After:  midnight,
		Limit:  500,
	})
	if err != nil {
		return nil, fmt.Errorf("GetOrders(all): %w", err)
	}
	return convertOrders(orders), nil
}

// GetPositions returns all current positions with signed quantities.
func (g *AlpacaGateway) GetPositions(ctx context.Context) ([]domain.BrokerPosition, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	positions, err := g.trading.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("GetPositions: %w", err)
	}

	out := make([]domain.BrokerPosition, 0, len(positions))
	for _, p := range positions {
		qty := p.Qty.InexactFloat64()
		if strings.EqualFold(string(p.Side), "short") && qty > 0 {
			qty = -qty
		}
		out = append(out, domain.BrokerPosition{Symbol: p.Symbol, Qty: qty})
	}
	return out, nil
}

// GetCurrentPrice returns the latest trade price for a symbol. A missing or
// zero-priced trade is reported as absence of data, not as a gateway failure.
func (g *AlpacaGateway) GetCurrentPrice(ctx context.Context, symbol string) (float64, bool, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}
	trade, err := g.data.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return 0, false, fmt.Errorf("GetLatestTrade(%s): %w", symbol, err)
	}
	if trade == nil || trade.Price <= 0 {
		return 0, false, nil
	}
	return trade.Price, true, nil
}

// PlaceOrder submits a day limit order.
func (g *AlpacaGateway) PlaceOrder(ctx context.Context, symbol string, side domain.OrderSide, qty float64, limitPrice float64) (*domain.BrokerOrder, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	q := decimal.NewFromFloat(qty)
	lp := decimal.NewFromFloat(limitPrice)

	order, err := g.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         &q,
		Side:        alpacaSide(side),
		Type:        alpaca.Limit,
		TimeInForce: alpaca.Day,
		LimitPrice:  &lp,
	})
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder(%s %s %v @ %v): %w", side, symbol, qty, limitPrice, err)
	}
	converted := convertOrder(*order)
	return &converted, nil
}

// PlaceMarketOrder submits a day market order.
func (g *AlpacaGateway) PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, qty float64) (*domain.BrokerOrder, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	q := decimal.NewFromFloat(qty)

	order, err := g.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         &q,
		Side:        alpacaSide(side),
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	})
	if err != nil {
		return nil, fmt.Errorf("PlaceMarketOrder(%s %s %v): %w", side, symbol, qty, err)
	}
	converted := convertOrder(*order)
	return &converted, nil
}

// GetAccount returns the current account metrics.
func (g *AlpacaGateway) GetAccount(ctx context.Context) (*domain.AccountInfo, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	acct, err := g.trading.GetAccount()
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}
	return &domain.AccountInfo{
		Equity:      acct.Equity.InexactFloat64(),
		LastEquity:  acct.LastEquity.InexactFloat64(),
		Cash:        acct.Cash.InexactFloat64(),
		BuyingPower: acct.BuyingPower.InexactFloat64(),
	}, nil
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func alpacaSide(side domain.OrderSide) alpaca.Side {
	if side == domain.OrderSideSell {
		return alpaca.Sell
	}
	return alpaca.Buy
}

func convertOrders(orders []alpaca.Order) []domain.BrokerOrder {
	out := make([]domain.BrokerOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, convertOrder(o))
	}
	return out
}

func convertOrder(o alpaca.Order) domain.BrokerOrder {
	b := domain.BrokerOrder{
		ID:        o.ID,
		Symbol:    o.Symbol,
		Side:      domain.OrderSide(o.Side),
		Status:    convertStatus(o.Status),
		UpdatedAt: o.UpdatedAt,
	}
	if o.Qty != nil {
		b.Qty = o.Qty.InexactFloat64()
	}
	if o.LimitPrice != nil {
		b.LimitPrice = o.LimitPrice.InexactFloat64()
	}
	if o.FilledAvgPrice != nil {
		b.FilledAvgPrice = o.FilledAvgPrice.InexactFloat64()
	}
	return b
}

// convertStatus folds Alpaca's order states into the three the engine
// distinguishes.
func convertStatus(status string) domain.OrderStatus {
	switch status {
	case "filled":
		return domain.OrderStatusFilled
	case "canceled", "expired", "rejected", "done_for_day", "replaced":
		return domain.OrderStatusCancelled
	default:
		return domain.OrderStatusSubmitted
	}
}

// ---------------------------------------------------------------------------
// Trading-calendar holiday source
// ---------------------------------------------------------------------------

// Compile-time interface check.
var _ util.HolidaySource = (*AlpacaHolidaySource)(nil)

// AlpacaHolidaySource answers holiday lookups from the Alpaca trading
// calendar: a weekday missing from the calendar is a full market closure.
// Refresh fetches the window; lookups are served from the cached set.
type AlpacaHolidaySource struct {
	trading *alpaca.Client
	log     *slog.Logger

	mu          sync.RWMutex
	tradingDays map[string]bool // YYYY-MM-DD
	validUntil  time.Time
}

// NewAlpacaHolidaySource creates a holiday source backed by the given
// gateway's trading client.
func NewAlpacaHolidaySource(g *AlpacaGateway, log *slog.Logger) *AlpacaHolidaySource {
	return &AlpacaHolidaySource{
		trading:     g.trading,
		log:         log.With("component", "holiday-source"),
		tradingDays: make(map[string]bool),
	}
}

// Refresh loads the trading calendar for the next lookahead window. It is
// retried with backoff; a persistent failure leaves the previous cache in
// place.
func (s *AlpacaHolidaySource) Refresh(ctx context.Context, days int) error {
	start := time.Now()
	end := start.AddDate(0, 0, days+7)

	var calendar []alpaca.CalendarDay
	err := util.Retry(ctx, 3, time.Second, func() error {
		var err error
		calendar, err = s.trading.GetCalendar(alpaca.GetCalendarRequest{
			Start: start,
			End:   end,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("GetCalendar: %w", err)
	}

	fresh := make(map[string]bool, len(calendar))
	for _, day := range calendar {
		fresh[day.Date] = true
	}

	s.mu.Lock()
	s.tradingDays = fresh
	s.validUntil = end
	s.mu.Unlock()

	s.log.Info("trading calendar refreshed", "days", len(fresh), "until", end.Format("2006-01-02"))
	return nil
}

// IsHoliday reports whether the given weekday is a full market closure.
// Weekends are never holidays here; the liquidation scheduler handles them
// separately. Days outside the cached window report false.
func (s *AlpacaHolidaySource) IsHoliday(day time.Time) bool {
	wd := day.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.tradingDays) == 0 || day.After(s.validUntil) {
		return false
	}
	return !s.tradingDays[day.Format("2006-01-02")]
}
