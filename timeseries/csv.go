package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	YearColumn  string // Column name for years (default: "year")
	ValueColumn string // Column name for values (default: last column)
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		YearColumn: "year",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a yearly series from a CSV file. Blank, "NA", "NaN" and
// "null" cells become missing observations rather than being dropped, so
// gaps in the record survive into the series.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a yearly series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	yearIdx, valueIdx := 0, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		yearIdx = -1
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case strings.EqualFold(h, opts.YearColumn) || (yearIdx == -1 && strings.EqualFold(h, "year")):
				yearIdx = i
			case opts.ValueColumn != "" && h == opts.ValueColumn:
				valueIdx = i
			}
		}
		if yearIdx == -1 {
			yearIdx = 0
		}
		if valueIdx == -1 {
			valueIdx = len(header) - 1
		}
	} else {
		valueIdx = 1
	}

	var (
		years  []int
		values []float64
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if yearIdx >= len(record) || valueIdx >= len(record) {
			continue
		}

		yearStr := strings.TrimSpace(strings.Trim(record[yearIdx], "\""))
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("timeseries: bad year %q: %w", yearStr, err)
		}

		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		val, err := parseCell(valStr)
		if err != nil {
			return nil, fmt.Errorf("timeseries: bad value %q for year %d: %w", valStr, year, err)
		}

		years = append(years, year)
		values = append(values, val)
	}

	if len(years) == 0 {
		return nil, errors.New("timeseries: no data rows found in CSV")
	}
	return New(years, values)
}

func parseCell(s string) (float64, error) {
	switch s {
	case "", "NA", "NaN", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
