// Package report reads daily case-report CSV files into a time series.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danielsamuels/covid-19-graphs/internal/country"
)

// Column names used by the two historical daily-report schemas. Only one set
// is present in any given file.
const (
	colRegionNew = "Country_Region"
	colStateNew  = "Province_State"
	colRegionOld = "Country/Region"
	colStateOld  = "Province/State"
)

// SchemaError reports a row that carries neither known column scheme. It is
// fatal: the input format is not one this tool understands.
type SchemaError struct {
	Keys []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unable to process row, available keys: %s", strings.Join(e.Keys, ", "))
}

// matchRow reports whether the header-keyed row belongs to the profile's
// country. The schema is detected per row by which region column is present.
func matchRow(row map[string]string, profile country.Profile) (bool, error) {
	if region, ok := row[colRegionNew]; ok {
		return profile.Matches(region, row[colStateNew]), nil
	}
	if region, ok := row[colRegionOld]; ok {
		return profile.Matches(region, row[colStateOld]), nil
	}
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return false, &SchemaError{Keys: keys}
}
