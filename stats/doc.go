// Package stats provides goodness-of-fit metrics, lag detection, and
// diagnostic tests for paired yearly series.
//
// # Fit Metrics
//
// Score predictions against observed values:
//
//	m, err := stats.Evaluate(actual, predicted, 2)
//	fmt.Printf("R2=%.3f RMSE=%.3f MAE=%.3f AIC=%.1f\n", m.R2, m.RMSE, m.MAE, m.AIC)
//
//	// For smoothers without a fixed parameter count, pass the
//	// effective degrees of freedom directly:
//	aic := stats.NonParametricAIC(actual, predicted, 0.3*float64(len(actual)))
//
// # Lag Detection
//
// Find the predictor lag that maximizes absolute Pearson correlation:
//
//	lag, corr, m, err := stats.MaxLag(doctorates, hires, 6)
//	fmt.Printf("best lag %d years (r=%.3f)\n", lag, corr)
//
// # Stationarity
//
// Test for a unit root before choosing a differencing order:
//
//	adf, err := stats.ADF(values, 0)
//	if err == nil && adf.IsStationary {
//	    // Series is already stationary, no differencing needed
//	}
//
// # Residual Diagnostics
//
// Test model residuals for leftover autocorrelation:
//
//	lb, err := stats.LjungBox(residuals, 10, p+q)
//	if err == nil && lb.PValue < 0.05 {
//	    // Residuals are still autocorrelated
//	}
//
// Helpers for autocorrelation (ACF) and repeated first differencing
// round out the package.
package stats
