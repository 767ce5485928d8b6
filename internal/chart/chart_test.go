package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsamuels/covid-19-graphs/internal/model"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestDeltas(t *testing.T) {
	series := model.TimeSeries{
		{Date: day(1), Confirmed: 0, Deaths: 0},
		{Date: day(2), Confirmed: 5, Deaths: 1},
	}
	deltas := Deltas(series)
	require.Len(t, deltas, 1)
	assert.Equal(t, day(2), deltas[0].Date)
	assert.Equal(t, 5, deltas[0].Confirmed)
	assert.Equal(t, 1, deltas[0].Deaths)
}

func TestDeltasLengthAndValues(t *testing.T) {
	series := model.TimeSeries{
		{Date: day(1), Confirmed: 10, Deaths: 2},
		{Date: day(2), Confirmed: 15, Deaths: 2},
		{Date: day(3), Confirmed: 12, Deaths: 5},
	}
	deltas := Deltas(series)
	require.Len(t, deltas, len(series)-1)
	for i := range deltas {
		assert.Equal(t, series[i+1].Confirmed-series[i].Confirmed, deltas[i].Confirmed)
		assert.Equal(t, series[i+1].Deaths-series[i].Deaths, deltas[i].Deaths)
	}
	// Negative deltas (data corrections) are preserved.
	assert.Equal(t, -3, deltas[1].Confirmed)
}

func TestDeltasShortSeries(t *testing.T) {
	assert.Nil(t, Deltas(nil))
	assert.Nil(t, Deltas(model.TimeSeries{{Date: day(1), Confirmed: 3}}))
}

func TestStartOffset(t *testing.T) {
	points := []Point{
		{Date: day(1), Confirmed: 0, Deaths: 0},
		{Date: day(2), Confirmed: 0, Deaths: 0},
		{Date: day(3), Confirmed: 3, Deaths: 0},
		{Date: day(4), Confirmed: 5, Deaths: 2},
	}

	offset, err := StartOffset(points, false)
	require.NoError(t, err)
	assert.Equal(t, 3, offset)

	offset, err = StartOffset(points, true)
	require.NoError(t, err)
	assert.Equal(t, 2, offset)
}

func TestStartOffsetNoData(t *testing.T) {
	points := []Point{
		{Date: day(1)},
		{Date: day(2)},
	}
	_, err := StartOffset(points, true)
	require.ErrorIs(t, err, ErrNoData)
}

func TestBuildShiftsDeathsOnly(t *testing.T) {
	points := []Point{
		{Date: day(1), Confirmed: 10, Deaths: 1},
		{Date: day(2), Confirmed: 20, Deaths: 2},
		{Date: day(3), Confirmed: 30, Deaths: 3},
		{Date: day(4), Confirmed: 40, Deaths: 4},
		{Date: day(5), Confirmed: 50, Deaths: 5},
	}
	cfg := model.RenderConfig{Country: "UK", Shift: 2}

	c, err := Build(KindCases, points, cfg)
	require.NoError(t, err)

	require.Len(t, c.Series, 2)
	confirmed, deaths := c.Series[0], c.Series[1]
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, confirmed.Values)
	assert.Equal(t, []float64{3, 4, 5}, deaths.Values)
	// Labels follow the longer, primary series.
	assert.Len(t, c.XLabels, 5)
	assert.Equal(t, "01 Jan", c.XLabels[0])
}

func TestBuildTrimsLeadingEmptyDays(t *testing.T) {
	points := []Point{
		{Date: day(1), Confirmed: 0, Deaths: 0},
		{Date: day(2), Confirmed: 1, Deaths: 1},
		{Date: day(3), Confirmed: 2, Deaths: 1},
	}
	c, err := Build(KindCases, points, model.RenderConfig{Country: "UK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"02 Jan", "03 Jan"}, c.XLabels)
	assert.Equal(t, []float64{1, 2}, c.Series[0].Values)
}

func TestBuildNoData(t *testing.T) {
	points := []Point{{Date: day(1)}}
	_, err := Build(KindDeltas, points, model.RenderConfig{Country: "UK"})
	require.ErrorIs(t, err, ErrNoData)
}

func TestBuildShiftLargerThanSeries(t *testing.T) {
	points := []Point{
		{Date: day(1), Confirmed: 1, Deaths: 1},
		{Date: day(2), Confirmed: 2, Deaths: 2},
	}
	c, err := Build(KindCases, points, model.RenderConfig{Country: "UK", Shift: 10})
	require.NoError(t, err)
	assert.Empty(t, c.Series[1].Values)
}

func TestTitle(t *testing.T) {
	assert.Equal(t,
		"Cases in confirmed and deaths, with the deaths shifted by 14 days",
		Title(KindCases, 14))
	assert.Equal(t,
		"Deltas in confirmed and deaths",
		Title(KindDeltas, 0))
}

func TestFilenameDeterministic(t *testing.T) {
	cfg := model.RenderConfig{Country: "UK", Shift: 14, Log: true}
	assert.Equal(t, "UK-cases-shifted-14-days (log).png", Filename(KindCases, cfg))
	assert.Equal(t, Filename(KindCases, cfg), Filename(KindCases, cfg))

	cfg = model.RenderConfig{Country: "Italy"}
	assert.Equal(t, "Italy-deltas-unshifted.png", Filename(KindDeltas, cfg))
}
