package indicator

import (
	"fmt"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/timeseries"
)

const (
	// DefaultShortTimespan is the short-term moving average window in days
	DefaultShortTimespan = 5
	// DefaultLongTimespan is the long-term moving average window in days
	DefaultLongTimespan = 10
)

// Signal is the outcome of a moving average crossover check
type Signal int

const (
	SignalNeutral Signal = iota
	SignalBuy
	SignalSell
)

// String returns the lowercase signal name
func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "buy"
	case SignalSell:
		return "sell"
	default:
		return "neutral"
	}
}

// ParseSignal parses "buy", "sell" or "neutral" (case-insensitive)
func ParseSignal(s string) (Signal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SignalBuy, nil
	case "sell":
		return SignalSell, nil
	case "neutral":
		return SignalNeutral, nil
	default:
		return SignalNeutral, fmt.Errorf("unknown signal %q", s)
	}
}

// Crossover classifies the change between two consecutive days of a short
// and a long moving average over the same series.
//
// Buy: short <= long on the previous day and short > long on the day.
// Sell: long <= short on the previous day and long > short on the day.
// Anything else, including a window the series cannot fully cover, is
// neutral.
type Crossover struct {
	short *MovingAverage
	long  *MovingAverage
}

// NewCrossover creates a crossover check with the given windows in days
func NewCrossover(series *timeseries.TimeSeries, shortTimespan, longTimespan int) (*Crossover, error) {
	if shortTimespan >= longTimespan {
		return nil, fmt.Errorf("short timespan (%d) must be less than long timespan (%d)", shortTimespan, longTimespan)
	}

	short, err := NewMovingAverage(series, shortTimespan)
	if err != nil {
		return nil, fmt.Errorf("short moving average: %w", err)
	}
	long, err := NewMovingAverage(series, longTimespan)
	if err != nil {
		return nil, fmt.Errorf("long moving average: %w", err)
	}

	return &Crossover{short: short, long: long}, nil
}

// NewDefaultCrossover creates the 5-day/10-day crossover check
func NewDefaultCrossover(series *timeseries.TimeSeries) *Crossover {
	c, _ := NewCrossover(series, DefaultShortTimespan, DefaultLongTimespan)
	return c
}

// SignalOn returns the crossover signal for onDate, comparing it with the
// day before
func (c *Crossover) SignalOn(onDate time.Time) Signal {
	// One extra day so both the previous and the current long average exist.
	days := c.long.WindowSize() + 1
	window := c.long.series.ClosingPrices(onDate, days)
	if len(window) < days {
		return SignalNeutral
	}

	prevShort, curShort := c.short.pair(window)
	prevLong, curLong := c.long.pair(window)

	if crossedAbove(prevShort, curShort, prevLong, curLong) {
		return SignalBuy
	}
	if crossedAbove(prevLong, curLong, prevShort, curShort) {
		return SignalSell
	}
	return SignalNeutral
}

// crossedAbove reports whether a moved from at or below ref to strictly above it
func crossedAbove(prevA, curA, prevRef, curRef float64) bool {
	return prevA <= prevRef && curA > curRef
}
