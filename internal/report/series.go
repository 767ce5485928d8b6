package report

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/danielsamuels/covid-19-graphs/internal/model"
)

// BuildSeries reduces every *.csv file in dir (non-recursive) into a
// date-ascending time series. Enumeration order is filesystem-dependent; the
// sort is stable, so under the keep policy same-date entries stay in
// enumeration order.
func (r *Reader) BuildSeries(dir string, policy model.DuplicatePolicy) (model.TimeSeries, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no report files found in %s", dir)
	}

	series := make(model.TimeSeries, 0, len(paths))
	for _, path := range paths {
		record, err := r.ReduceFile(path)
		if err != nil {
			return nil, err
		}
		series = append(series, record)
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	if policy == model.DuplicateFail {
		for i := 1; i < len(series); i++ {
			if series[i].Date.Equal(series[i-1].Date) {
				return nil, fmt.Errorf("multiple report files resolve to %s", series[i].Date.Format(dateLayout))
			}
		}
	}
	return series, nil
}
