// Package model defines shared data structures.
package model

import "time"

// DailyRecord holds one day's cumulative counts for the active country.
// Counts stay zero when the source file has no row for the country.
type DailyRecord struct {
	Date      time.Time
	Confirmed int
	Deaths    int
	Recovered int
}

// TimeSeries is a sequence of daily records, sorted ascending by date.
type TimeSeries []DailyRecord

// DeltaRecord holds the day-over-day change in cumulative counts.
type DeltaRecord struct {
	Date      time.Time
	Confirmed int
	Deaths    int
}

// DuplicatePolicy decides what happens when two report files resolve to the
// same date.
type DuplicatePolicy string

const (
	// DuplicateKeep keeps every colliding record, in enumeration-then-sort order.
	DuplicateKeep DuplicatePolicy = "keep"
	// DuplicateFail aborts the run on the first colliding date.
	DuplicateFail DuplicatePolicy = "fail"
)

// RenderConfig defines chart rendering settings.
type RenderConfig struct {
	Country string
	Shift   int
	Log     bool
	AnyCase bool
}
