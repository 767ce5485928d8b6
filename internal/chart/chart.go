// Package chart builds renderer-agnostic chart descriptions from time series.
package chart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielsamuels/covid-19-graphs/internal/model"
)

// Kind names the chart variants.
type Kind string

const (
	// KindCases charts the raw cumulative counts.
	KindCases Kind = "cases"
	// KindDeltas charts the day-over-day changes.
	KindDeltas Kind = "deltas"
)

// labelLayout formats x-axis date labels.
const labelLayout = "02 Jan"

// ErrNoData reports a series where no day satisfies the start predicate.
var ErrNoData = errors.New("no day satisfies the chart start predicate")

// Point is one (date, confirmed, deaths) tuple to chart. Both raw counts and
// deltas chart through the same shape.
type Point struct {
	Date      time.Time
	Confirmed int
	Deaths    int
}

// Series is one named bar series.
type Series struct {
	Name   string
	Values []float64
}

// Chart is a backend-independent chart description. The deaths series may be
// shorter than XLabels when a shift is applied; labels always follow the
// confirmed series.
type Chart struct {
	Title   string
	XLabels []string
	Series  []Series
	LogY    bool
}

// CasesPoints converts a time series into chartable points. Recovered counts
// are carried in the records but never charted.
func CasesPoints(series model.TimeSeries) []Point {
	points := make([]Point, len(series))
	for i, record := range series {
		points[i] = Point{Date: record.Date, Confirmed: record.Confirmed, Deaths: record.Deaths}
	}
	return points
}

// DeltaPoints converts delta records into chartable points.
func DeltaPoints(deltas []model.DeltaRecord) []Point {
	points := make([]Point, len(deltas))
	for i, delta := range deltas {
		points[i] = Point{Date: delta.Date, Confirmed: delta.Confirmed, Deaths: delta.Deaths}
	}
	return points
}

// Deltas computes day-over-day changes between consecutive records of a sorted
// series. The first record has no predecessor and is dropped. Negative values
// (data corrections) pass through unclamped.
func Deltas(series model.TimeSeries) []model.DeltaRecord {
	if len(series) < 2 {
		return nil
	}
	deltas := make([]model.DeltaRecord, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		deltas = append(deltas, model.DeltaRecord{
			Date:      series[i].Date,
			Confirmed: series[i].Confirmed - series[i-1].Confirmed,
			Deaths:    series[i].Deaths - series[i-1].Deaths,
		})
	}
	return deltas
}

// StartOffset returns the first index with chartable data: with anyCase, the
// first day where confirmed+deaths > 0; otherwise the first day with at least
// one confirmed case and one death. ErrNoData when no day qualifies.
func StartOffset(points []Point, anyCase bool) (int, error) {
	for i, p := range points {
		if anyCase {
			if p.Confirmed+p.Deaths > 0 {
				return i, nil
			}
			continue
		}
		if p.Confirmed > 0 && p.Deaths > 0 {
			return i, nil
		}
	}
	return 0, ErrNoData
}

// Build assembles the chart for kind from points. Leading days that fail the
// start predicate are trimmed, then the first cfg.Shift entries are dropped
// from the deaths series only, so the presumed reporting lag lines up against
// confirmed cases. The two series intentionally differ in length when a shift
// is in effect.
func Build(kind Kind, points []Point, cfg model.RenderConfig) (Chart, error) {
	offset, err := StartOffset(points, cfg.AnyCase)
	if err != nil {
		return Chart{}, fmt.Errorf("%s chart: %w", kind, err)
	}
	points = points[offset:]

	labels := make([]string, len(points))
	confirmed := make([]float64, len(points))
	deaths := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Date.Format(labelLayout)
		confirmed[i] = float64(p.Confirmed)
		deaths[i] = float64(p.Deaths)
	}

	shift := cfg.Shift
	if shift < 0 {
		shift = 0
	}
	if shift > len(deaths) {
		shift = len(deaths)
	}
	deaths = deaths[shift:]

	return Chart{
		Title:   Title(kind, cfg.Shift),
		XLabels: labels,
		Series: []Series{
			{Name: "Confirmed Cases", Values: confirmed},
			{Name: "Deaths", Values: deaths},
		},
		LogY: cfg.Log,
	}, nil
}

// Title generates the chart title for a kind and shift amount.
func Title(kind Kind, shift int) string {
	name := titleCase(string(kind))
	if shift > 0 {
		return fmt.Sprintf("%s in confirmed and deaths, with the deaths shifted by %d days", name, shift)
	}
	return fmt.Sprintf("%s in confirmed and deaths", name)
}

// Filename generates the deterministic output filename for a chart.
func Filename(kind Kind, cfg model.RenderConfig) string {
	shifted := "unshifted"
	if cfg.Shift > 0 {
		shifted = fmt.Sprintf("shifted-%d-days", cfg.Shift)
	}
	suffix := ""
	if cfg.Log {
		suffix = " (log)"
	}
	return fmt.Sprintf("%s-%s-%s%s.png", cfg.Country, kind, shifted, suffix)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
