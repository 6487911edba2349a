// Package stock holds instruments, their price history and the exchange
// that groups them.
package stock

import (
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/event"
	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/internal/timeseries"
	"github.com/mohamedkhairy/stock-alerter/pkg/indicator"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
)

// Stock is a named instrument with its price history. Update is the only
// way to mutate it and fires Updated after every accepted update.
//
// A Stock is not safe for concurrent use.
type Stock struct {
	Symbol string

	// Updated fires synchronously after each accepted update, carrying the stock
	Updated *event.Event[*Stock]

	history       *timeseries.TimeSeries
	shortTimespan int
	longTimespan  int
}

// Option configures a Stock
type Option func(*Stock)

// WithCrossoverTimespans sets the short and long moving average windows, in
// days, used by CrossoverSignal. Invalid pairs keep the defaults.
func WithCrossoverTimespans(short, long int) Option {
	return func(s *Stock) {
		if short < 1 || short >= long {
			return
		}
		s.shortTimespan = short
		s.longTimespan = long
	}
}

// New creates a stock with an empty history
func New(symbol string, opts ...Option) *Stock {
	s := &Stock{
		Symbol:        symbol,
		Updated:       event.New[*Stock](),
		history:       timeseries.New(),
		shortTimespan: indicator.DefaultShortTimespan,
		longTimespan:  indicator.DefaultLongTimespan,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update records a price observation and notifies listeners. Negative prices
// are rejected with models.ErrNegativePrice; nothing is recorded and no
// listener runs.
func (s *Stock) Update(timestamp time.Time, price float64) error {
	if price < 0 {
		logger.StockUpdateErrorsTotal.WithLabelValues("negative_price").Inc()
		return fmt.Errorf("%s: %w (got %v)", s.Symbol, models.ErrNegativePrice, price)
	}

	s.history.Update(timestamp, price)
	logger.StockUpdatesTotal.WithLabelValues(s.Symbol).Inc()
	logger.Debug("Stock updated",
		logger.String("symbol", s.Symbol),
		logger.Time("timestamp", timestamp),
		logger.Float64("price", price),
	)

	s.Updated.Fire(s)
	return nil
}

// Price returns the value of the chronologically latest observation. ok is
// false when the stock has no observations yet.
func (s *Stock) Price() (price float64, ok bool) {
	last, ok := s.history.Last()
	if !ok {
		return 0, false
	}
	return last.Value, true
}

// LastUpdate returns the timestamp of the chronologically latest observation
func (s *Stock) LastUpdate() (time.Time, bool) {
	last, ok := s.history.Last()
	if !ok {
		return time.Time{}, false
	}
	return last.Timestamp, true
}

// History returns the stock's time series for read access
func (s *Stock) History() *timeseries.TimeSeries {
	return s.history
}

// IsIncreasingTrend reports whether the three latest observations are
// strictly increasing. It is false with fewer than three observations.
func (s *Stock) IsIncreasingTrend() bool {
	if s.history.Len() < 3 {
		return false
	}

	prices := make([]float64, 3)
	for i := range prices {
		obs, err := s.history.At(i - 3)
		if err != nil {
			return false
		}
		prices[i] = obs.Value
	}

	return prices[0] < prices[1] && prices[1] < prices[2]
}

// CrossoverSignal classifies the short/long moving average crossover between
// the day before onDate and onDate
func (s *Stock) CrossoverSignal(onDate time.Time) indicator.Signal {
	crossover, err := indicator.NewCrossover(s.history, s.shortTimespan, s.longTimespan)
	if err != nil {
		// Timespans are checked by WithCrossoverTimespans.
		return indicator.SignalNeutral
	}
	return crossover.SignalOn(onDate)
}
