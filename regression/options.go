package regression

import "github.com/rs/zerolog"

// Options configures the regression strategies. The zero value is not
// usable; start from DefaultOptions and override fields as needed.
type Options struct {
	// HorizonYear is the year the single forward prediction targets. When
	// the explanatory series has no value recorded for this year, the
	// latest available value is used instead.
	HorizonYear int

	// MaxLagYears bounds the lag scan (inclusive).
	MaxLagYears int

	// DoCV enables forward-chaining cross-validation with KFolds folds.
	DoCV   bool
	KFolds int

	// Degree is the polynomial basis degree.
	Degree int

	// Frac is the LOWESS smoothing fraction.
	Frac float64

	// LengthScale is the initial RBF kernel length scale for the Gaussian
	// process strategy.
	LengthScale float64

	// MaxP, MaxD, MaxQ bound the ARIMA order grid (inclusive).
	MaxP, MaxD, MaxQ int

	// Logger receives cross-validation fold skips and grid candidate
	// failures at warn level. Defaults to a no-op logger; the same
	// messages always travel on Result.Diagnostics.
	Logger zerolog.Logger
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		HorizonYear: 2024,
		MaxLagYears: 6,
		DoCV:        true,
		KFolds:      5,
		Degree:      2,
		Frac:        0.3,
		LengthScale: 1.0,
		MaxP:        3,
		MaxD:        2,
		MaxQ:        3,
		Logger:      zerolog.Nop(),
	}
}
