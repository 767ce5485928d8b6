package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/danielsamuels/covid-19-graphs/internal/country"
	"github.com/danielsamuels/covid-19-graphs/internal/model"
)

// dateLayout matches the MM-DD-YYYY naming of the daily report dump.
const dateLayout = "01-02-2006"

const utf8BOM = "\ufeff"

// ErrBadFilename marks report files whose name does not encode a date.
var ErrBadFilename = errors.New("report filename does not encode a date")

// Reader reduces daily report files for one country into daily records.
type Reader struct {
	Country string
	Profile country.Profile
	Logger  *zap.Logger
}

// ReduceFile reads one daily report and returns the record for the active
// country. The date comes from the filename, not the file contents. A file
// with no matching row yields a zero-filled record, which is not an error.
func (r *Reader) ReduceFile(path string) (model.DailyRecord, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	date, err := time.Parse(dateLayout, name)
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("%w: %q", ErrBadFilename, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("failed to open report: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	row, err := r.firstMatch(csv.NewReader(file))
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	record := model.DailyRecord{Date: date}
	if row == nil {
		r.Logger.Debug("no country data in report",
			zap.String("country", r.Country),
			zap.String("file", filepath.Base(path)))
		return record, nil
	}

	if record.Confirmed, err = parseCount(row["Confirmed"]); err != nil {
		return model.DailyRecord{}, fmt.Errorf("%s: bad Confirmed value: %w", filepath.Base(path), err)
	}
	if record.Deaths, err = parseCount(row["Deaths"]); err != nil {
		return model.DailyRecord{}, fmt.Errorf("%s: bad Deaths value: %w", filepath.Base(path), err)
	}
	if record.Recovered, err = parseCount(row["Recovered"]); err != nil {
		return model.DailyRecord{}, fmt.Errorf("%s: bad Recovered value: %w", filepath.Base(path), err)
	}
	return record, nil
}

// firstMatch returns the first row belonging to the active country, or nil if
// none match. Later matches are ignored on purpose: the source data carries at
// most one row per country per day, and when it does not, the reference
// behavior is to keep the first.
func (r *Reader) firstMatch(reader *csv.Reader) (map[string]string, error) {
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		ok, err := matchRow(row, r.Profile)
		if err != nil {
			return nil, err
		}
		if ok {
			return row, nil
		}
	}
}

// parseCount parses a cumulative count cell, treating the empty string (and a
// missing column) as zero.
func parseCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	return count, nil
}
