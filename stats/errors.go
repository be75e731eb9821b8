package stats

import "errors"

var (
	// ErrInsufficientData reports fewer than two jointly valid observations
	// where a computation requires at least two.
	ErrInsufficientData = errors.New("stats: insufficient valid data points")

	// ErrInvalidArgument reports an out-of-range parameter such as a
	// negative maximum lag.
	ErrInvalidArgument = errors.New("stats: invalid argument")
)
