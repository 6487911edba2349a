package timeseries

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func values(list []Observation) []float64 {
	out := make([]float64, len(list))
	for i, obs := range list {
		out[i] = obs.Value
	}
	return out
}

func TestTimeSeries_PriceHistory(t *testing.T) {
	series := New()
	series.Update(day(2014, 3, 10), 5)
	series.Update(day(2014, 3, 11), 15)

	first, err := series.At(0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, first.Value)

	second, err := series.At(1)
	require.NoError(t, err)
	assert.Equal(t, 15.0, second.Value)
}

func TestTimeSeries_UpdateOutOfOrder(t *testing.T) {
	series := New()
	series.Update(day(2014, 2, 12), 12)
	series.Update(day(2014, 2, 10), 10)
	series.Update(day(2014, 2, 11), 11)

	assert.Equal(t, []float64{10, 11, 12}, values(series.Observations()))

	last, ok := series.Last()
	require.True(t, ok)
	assert.Equal(t, 12.0, last.Value)
}

func TestTimeSeries_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	series := New()
	ts := day(2014, 2, 10)
	series.Update(ts, 1)
	series.Update(ts, 2)
	series.Update(ts.Add(-time.Hour), 0)

	assert.Equal(t, []float64{0, 1, 2}, values(series.Observations()))
}

func TestTimeSeries_RandomInsertionStaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	series := New()

	var maxTS time.Time
	var maxValue float64
	for i := 0; i < 200; i++ {
		ts := day(2014, 1, 1).Add(time.Duration(rng.Intn(60*24)) * time.Hour)
		value := float64(rng.Intn(1000))
		series.Update(ts, value)
		if !ts.Before(maxTS) {
			maxTS = ts
			maxValue = value
		}
	}

	obs := series.Observations()
	require.Len(t, obs, 200)
	for i := 1; i < len(obs); i++ {
		assert.False(t, obs[i].Timestamp.Before(obs[i-1].Timestamp), "series out of order at %d", i)
	}

	last, ok := series.Last()
	require.True(t, ok)
	assert.Equal(t, maxTS, last.Timestamp)
	assert.Equal(t, maxValue, last.Value)
}

func TestTimeSeries_At(t *testing.T) {
	series := New()
	series.Update(day(2014, 2, 10), 8)
	series.Update(day(2014, 2, 11), 10)
	series.Update(day(2014, 2, 12), 12)

	tests := []struct {
		name    string
		index   int
		want    float64
		wantErr bool
	}{
		{name: "first", index: 0, want: 8},
		{name: "last", index: 2, want: 12},
		{name: "from end", index: -1, want: 12},
		{name: "oldest from end", index: -3, want: 8},
		{name: "past end", index: 3, wantErr: true},
		{name: "before start", index: -4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := series.At(tt.index)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrIndexOutOfRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, obs.Value)
		})
	}
}

func TestTimeSeries_AtEmpty(t *testing.T) {
	series := New()

	_, err := series.At(0)
	assert.ErrorIs(t, err, models.ErrIndexOutOfRange)

	_, ok := series.Last()
	assert.False(t, ok)
}

func TestClosingPriceList_BeforeSeriesStart(t *testing.T) {
	series := New()
	series.Update(day(2014, 3, 10), 5)

	assert.Empty(t, series.ClosingPriceList(day(2014, 3, 9), 1))
}

func TestClosingPriceList_EmptySeries(t *testing.T) {
	series := New()

	assert.Empty(t, series.ClosingPriceList(day(2014, 3, 9), 5))
}

func TestClosingPriceList_NonPositiveDays(t *testing.T) {
	series := New()
	series.Update(day(2014, 3, 10), 5)

	assert.Empty(t, series.ClosingPriceList(day(2014, 3, 10), 0))
	assert.Empty(t, series.ClosingPriceList(day(2014, 3, 10), -3))
}

func TestClosingPriceList_DailyPrices(t *testing.T) {
	series := New()
	for i, price := range []float64{1, 2, 3, 4, 5} {
		series.Update(day(2014, 2, 10+i), price)
	}

	got := series.ClosingPriceList(day(2014, 2, 14), 3)
	assert.Equal(t, []float64{3, 4, 5}, values(got))
	assert.Equal(t, day(2014, 2, 12), got[0].Timestamp)
}

func TestClosingPriceList_ForwardFillsGaps(t *testing.T) {
	series := New()
	series.Update(day(2014, 2, 10), 10)
	series.Update(day(2014, 2, 13), 13)

	got := series.ClosingPriceList(day(2014, 2, 14), 5)
	assert.Equal(t, []float64{10, 10, 10, 13, 13}, values(got))
}

func TestClosingPriceList_PartialWindow(t *testing.T) {
	series := New()
	series.Update(day(2014, 3, 10), 5)
	series.Update(day(2014, 3, 11), 6)

	got := series.ClosingPriceList(day(2014, 3, 12), 10)
	assert.Equal(t, []float64{5, 6, 6}, values(got))
}

func TestClosingPriceList_DayOfFirstObservationIsCovered(t *testing.T) {
	series := New()
	series.Update(day(2014, 3, 10).Add(15*time.Hour), 5)

	got := series.ClosingPriceList(day(2014, 3, 10), 2)
	assert.Equal(t, []float64{5}, values(got))
}

func TestClosingPriceList_LatestUpdateOfTheDayWins(t *testing.T) {
	series := New()
	base := day(2014, 2, 10)
	series.Update(base.Add(10*time.Hour), 10)
	series.Update(base.Add(16*time.Hour), 12)
	series.Update(base.Add(9*time.Hour), 9)
	series.Update(base.AddDate(0, 0, 1).Add(11*time.Hour), 20)
	series.Update(base.AddDate(0, 0, 1).Add(11*time.Hour), 21)

	got := series.ClosingPriceList(day(2014, 2, 11), 2)
	assert.Equal(t, []float64{12, 21}, values(got))
}

func TestClosingPriceList_IgnoresLaterObservations(t *testing.T) {
	series := New()
	series.Update(day(2014, 2, 10), 10)
	series.Update(day(2014, 2, 11), 11)
	series.Update(day(2014, 2, 20), 99)

	got := series.ClosingPriceList(day(2014, 2, 12), 3)
	assert.Equal(t, []float64{10, 11, 11}, values(got))
}

func TestClosingPriceList_LengthNeverExceedsWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	series := New()
	for i := 0; i < 50; i++ {
		series.Update(day(2014, 1, 1).Add(time.Duration(rng.Intn(40*24))*time.Hour), float64(i))
	}

	for n := 0; n < 30; n++ {
		onDate := day(2014, 1, 1).AddDate(0, 0, rng.Intn(60)-10)
		got := series.ClosingPriceList(onDate, n)
		assert.LessOrEqual(t, len(got), n)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Timestamp.Before(got[i-1].Timestamp))
		}
	}
}

func TestClosingPrices(t *testing.T) {
	series := New()
	series.Update(day(2014, 2, 10), 10)
	series.Update(day(2014, 2, 11), 11)

	assert.Equal(t, []float64{10, 11}, series.ClosingPrices(day(2014, 2, 11), 2))
}
