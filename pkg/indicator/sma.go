package indicator

import (
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/internal/timeseries"
)

// MovingAverage is a simple moving average over the daily closing prices of
// a time series. It holds no state of its own: every query reconstructs the
// window from the series, so results always reflect the latest updates.
// SMA = Sum of closing prices over timespan / timespan
type MovingAverage struct {
	series   *timeseries.TimeSeries
	timespan int
	name     string
}

// NewMovingAverage creates a moving average view over series spanning
// timespan calendar days
func NewMovingAverage(series *timeseries.TimeSeries, timespan int) (*MovingAverage, error) {
	if series == nil {
		return nil, fmt.Errorf("series cannot be nil")
	}
	if timespan < 1 {
		return nil, fmt.Errorf("moving average timespan must be at least 1, got %d", timespan)
	}

	return &MovingAverage{
		series:   series,
		timespan: timespan,
		name:     fmt.Sprintf("sma_%d", timespan),
	}, nil
}

// Name returns the indicator name
func (m *MovingAverage) Name() string {
	return m.name
}

// WindowSize returns the number of calendar days averaged
func (m *MovingAverage) WindowSize() int {
	return m.timespan
}

// ValueOn returns the average of the closing prices of the timespan days
// ending at endDate. It fails with models.ErrNotEnoughData when the series
// does not cover the whole window.
func (m *MovingAverage) ValueOn(endDate time.Time) (float64, error) {
	prices := m.series.ClosingPrices(endDate, m.timespan)
	if len(prices) < m.timespan {
		return 0, fmt.Errorf("%w: %s needs %d days, have %d", models.ErrNotEnoughData, m.name, m.timespan, len(prices))
	}
	return mean(prices), nil
}

// pair returns the average ending one day before the last entry of window
// and the average ending at the last entry. window must hold at least
// timespan+1 closing prices.
func (m *MovingAverage) pair(window []float64) (prev, cur float64) {
	n := len(window)
	cur = mean(window[n-m.timespan:])
	prev = mean(window[n-1-m.timespan : n-1])
	return prev, cur
}

func mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	var sum float64
	for _, price := range prices {
		sum += price
	}

	return sum / float64(len(prices))
}
