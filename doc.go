// Package tenuretracker provides trend/cycle decomposition and forecasting
// for paired yearly datasets.
//
// The library analyzes an explanatory series X against a response series Y
// (canonically doctorates granted versus tenure-track hires): it discovers
// the best temporal lag between the two, aligns them on their jointly valid
// years, fits any of five regression families behind one uniform result
// bundle, cross-validates with a forward-chaining fold scheme, and
// decomposes the response into trend plus cycle with projections through a
// configurable horizon year.
//
// # Quick Start
//
// Fit a single regression strategy:
//
//	x, _ := timeseries.New(years, doctorates)
//	y, _ := timeseries.New(years, hires)
//	res, _ := regression.Linear(x, y, regression.DefaultOptions())
//	fmt.Println(res.Lag, res.Prediction, res.R2)
//
// Run the full decomposition:
//
//	cfg := decompose.DefaultConfig()
//	cfg.Method = "gaussian"
//	result, _ := decompose.Decompose(x, y, cfg)
//	forecasts := result.Future
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: year-indexed series, cleaning, and lag alignment
//   - stats: metrics, lag discovery, stationarity and residual tests
//   - smooth: LOWESS smoothing with edge-hold interpolation
//   - gp: Gaussian process regression (RBF plus white-noise kernel)
//   - arima: ARIMA with an exogenous regressor
//   - regression: strategy dispatch, cross-validation, result bundles
//   - decompose: cyclicality extraction and trend+cycle orchestration
//
// Every public operation is a pure function of its arguments; results are
// built fresh per call and never share mutable state.
package tenuretracker
