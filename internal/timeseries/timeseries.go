// Package timeseries keeps a per-instrument price history ordered by
// timestamp and reconstructs daily closing prices from it.
package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
)

// Observation is a single immutable (timestamp, value) record
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TimeSeries is an append-only sequence of observations kept sorted by
// timestamp. Observations with equal timestamps keep their insertion order.
//
// A TimeSeries is not safe for concurrent use; it is owned by a single Stock.
type TimeSeries struct {
	series []Observation
}

// New creates an empty time series
func New() *TimeSeries {
	return &TimeSeries{
		series: make([]Observation, 0),
	}
}

// Update inserts an observation, keeping the series sorted by timestamp.
// Updates may arrive out of order. The value is not validated here.
func (ts *TimeSeries) Update(timestamp time.Time, value float64) {
	// Insert after any observation with an equal timestamp so that the
	// most recently inserted one wins ties.
	idx := sort.Search(len(ts.series), func(i int) bool {
		return ts.series[i].Timestamp.After(timestamp)
	})

	ts.series = append(ts.series, Observation{})
	copy(ts.series[idx+1:], ts.series[idx:])
	ts.series[idx] = Observation{Timestamp: timestamp, Value: value}
}

// Len returns the number of observations
func (ts *TimeSeries) Len() int {
	return len(ts.series)
}

// At returns the observation at index. Negative indices count from the end,
// so At(-1) is the chronologically latest observation.
func (ts *TimeSeries) At(index int) (Observation, error) {
	n := len(ts.series)
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Observation{}, fmt.Errorf("%w: index %d, length %d", models.ErrIndexOutOfRange, index, n)
	}
	return ts.series[i], nil
}

// Last returns the observation with the greatest timestamp
func (ts *TimeSeries) Last() (Observation, bool) {
	if len(ts.series) == 0 {
		return Observation{}, false
	}
	return ts.series[len(ts.series)-1], true
}

// Observations returns a copy of the series in timestamp order
func (ts *TimeSeries) Observations() []Observation {
	out := make([]Observation, len(ts.series))
	copy(out, ts.series)
	return out
}

// ClosingPriceList reconstructs the closing price for each of the numDays
// calendar days ending at onDate (inclusive), ordered oldest to newest.
//
// The closing price of a day is the latest observation at or before the end
// of that day, so days without observations carry the previous value
// forward. Days are taken in onDate's location. The walk stops at the first
// day that precedes every observation, which makes the result shorter than
// numDays whenever the window reaches back before the series start.
func (ts *TimeSeries) ClosingPriceList(onDate time.Time, numDays int) []Observation {
	if numDays <= 0 {
		return []Observation{}
	}

	y, m, d := onDate.Date()
	endOfDay := time.Date(y, m, d, 0, 0, 0, 0, onDate.Location()).AddDate(0, 0, 1)

	reversed := make([]Observation, 0, numDays)
	for i := 0; i < numDays; i++ {
		cutoff := endOfDay.AddDate(0, 0, -i)
		idx := sort.Search(len(ts.series), func(j int) bool {
			return !ts.series[j].Timestamp.Before(cutoff)
		})
		if idx == 0 {
			break
		}
		reversed = append(reversed, ts.series[idx-1])
	}

	out := make([]Observation, len(reversed))
	for i, obs := range reversed {
		out[len(reversed)-1-i] = obs
	}
	return out
}

// ClosingPrices is ClosingPriceList reduced to the values
func (ts *TimeSeries) ClosingPrices(onDate time.Time, numDays int) []float64 {
	list := ts.ClosingPriceList(onDate, numDays)
	prices := make([]float64, len(list))
	for i, obs := range list {
		prices[i] = obs.Value
	}
	return prices
}
