package timeseries

import (
	"errors"
	"math"
	"sort"
)

// Series represents a yearly time series: an ordered mapping from year to
// value. A value of NaN marks a missing observation for that year; missing
// values are preserved and drive the joint-validity logic in Clean and
// AlignWithLag.
type Series struct {
	years  []int
	values []float64
	Name   string
}

// New creates a series from parallel year and value slices. Years must be
// strictly increasing. Both slices are copied.
func New(years []int, values []float64) (*Series, error) {
	if len(years) != len(values) {
		return nil, errors.New("timeseries: years and values must have the same length")
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, errors.New("timeseries: years must be strictly increasing")
		}
	}
	ys := make([]int, len(years))
	copy(ys, years)
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Series{years: ys, values: vs}, nil
}

// FromValues creates a series over consecutive years starting at startYear.
func FromValues(startYear int, values []float64) *Series {
	years := make([]int, len(values))
	for i := range years {
		years[i] = startYear + i
	}
	s, _ := New(years, values)
	return s
}

func empty() *Series {
	return &Series{}
}

// Len returns the number of observations, missing ones included.
func (s *Series) Len() int {
	return len(s.values)
}

// Year returns the year at position i.
func (s *Series) Year(i int) int {
	return s.years[i]
}

// Value returns the value at position i.
func (s *Series) Value(i int) float64 {
	return s.values[i]
}

// At returns the value recorded for the given year. The second return is
// false when the year is not part of the series; a recorded NaN returns
// (NaN, true).
func (s *Series) At(year int) (float64, bool) {
	i := sort.SearchInts(s.years, year)
	if i < len(s.years) && s.years[i] == year {
		return s.values[i], true
	}
	return math.NaN(), false
}

// Years returns a copy of the year axis.
func (s *Series) Years() []int {
	ys := make([]int, len(s.years))
	copy(ys, s.years)
	return ys
}

// Values returns a copy of the values.
func (s *Series) Values() []float64 {
	vs := make([]float64, len(s.values))
	copy(vs, s.values)
	return vs
}

// Last returns the latest year and its value. The boolean is false for an
// empty series.
func (s *Series) Last() (int, float64, bool) {
	if len(s.values) == 0 {
		return 0, math.NaN(), false
	}
	n := len(s.values) - 1
	return s.years[n], s.values[n], true
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	c, _ := New(s.years, s.values)
	c.Name = s.Name
	return c
}

// Slice returns a copy of the positions [start, end). Out-of-range bounds are
// clamped; an inverted range yields an empty series.
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.values) {
		end = len(s.values)
	}
	if start >= end {
		return empty()
	}
	c, _ := New(s.years[start:end], s.values[start:end])
	c.Name = s.Name
	return c
}

// validRange returns the first and last years holding non-missing values.
// ok is false when every value is missing.
func (s *Series) validRange() (first, last int, ok bool) {
	for i := 0; i < len(s.values); i++ {
		if !math.IsNaN(s.values[i]) {
			first = s.years[i]
			ok = true
			break
		}
	}
	if !ok {
		return 0, 0, false
	}
	for i := len(s.values) - 1; i >= 0; i-- {
		if !math.IsNaN(s.values[i]) {
			last = s.years[i]
			break
		}
	}
	return first, last, true
}

// Clean restricts both series to the years where both hold non-missing
// values. The returned series have equal length and identical year axes.
// An empty result is not an error; callers handle zero-length downstream.
func Clean(x, y *Series) (*Series, *Series) {
	var (
		years  []int
		xVals  []float64
		yVals  []float64
		xi, yi int
	)
	for xi < len(x.years) && yi < len(y.years) {
		switch {
		case x.years[xi] < y.years[yi]:
			xi++
		case x.years[xi] > y.years[yi]:
			yi++
		default:
			xv, yv := x.values[xi], y.values[yi]
			if !math.IsNaN(xv) && !math.IsNaN(yv) {
				years = append(years, x.years[xi])
				xVals = append(xVals, xv)
				yVals = append(yVals, yv)
			}
			xi++
			yi++
		}
	}
	xc, _ := New(years, xVals)
	yc, _ := New(years, yVals)
	xc.Name, yc.Name = x.Name, y.Name
	return xc, yc
}

// AlignWithLag pairs X's value at year t-lag with Y's value at year t, so a
// positive lag shifts X forward in time relative to Y. The overlap range is
// [max(yFirst, xFirst+lag), min(yLast, xLast+lag)] computed from each side's
// non-missing extent; within it only jointly non-missing pairs are kept.
// The returned X keeps its own years (t-lag) and the returned Y keeps years
// t, so positionwise X.Year+lag == Y.Year. No overlap yields two empty
// series, not an error. AlignWithLag(x, y, 0) is equivalent to Clean(x, y).
func AlignWithLag(x, y *Series, lag int) (*Series, *Series) {
	xFirst, xLast, xOK := x.validRange()
	yFirst, yLast, yOK := y.validRange()
	if !xOK || !yOK {
		return empty(), empty()
	}

	start := yFirst
	if xFirst+lag > start {
		start = xFirst + lag
	}
	end := yLast
	if xLast+lag < end {
		end = xLast + lag
	}
	if start > end {
		return empty(), empty()
	}

	var (
		xYears []int
		yYears []int
		xVals  []float64
		yVals  []float64
	)
	for t := start; t <= end; t++ {
		xv, xok := x.At(t - lag)
		yv, yok := y.At(t)
		if !xok || !yok || math.IsNaN(xv) || math.IsNaN(yv) {
			continue
		}
		xYears = append(xYears, t-lag)
		yYears = append(yYears, t)
		xVals = append(xVals, xv)
		yVals = append(yVals, yv)
	}
	xa, _ := New(xYears, xVals)
	ya, _ := New(yYears, yVals)
	xa.Name, ya.Name = x.Name, y.Name
	return xa, ya
}
