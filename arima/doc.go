// Package arima implements ARIMA models with a single exogenous regressor.
//
// The model is fit in two stages: the response is regressed on the exogenous
// series by ordinary least squares, then the regression errors are modeled
// as an ARIMA(p,d,q) process estimated by conditional sum of squares. An
// ARIMA(p,d,q) model combines:
//   - AR(p): AutoRegressive component with p lags
//   - I(d): Integration (differencing) of order d
//   - MA(q): Moving Average component with q lags
//
// # Basic Usage
//
// Fit a model and forecast with known future regressor values:
//
//	model := arima.New(1, 1, 0)
//	if err := model.Fit(hires, doctorates); err != nil {
//	    log.Fatal(err)
//	}
//
//	forecasts, err := model.Forecast(3, futureDoctorates)
//
// # Model Selection
//
// Use information criteria to compare candidate orders:
//
//	m1 := arima.New(1, 0, 0)
//	m2 := arima.New(1, 0, 1)
//	m1.Fit(y, x)
//	m2.Fit(y, x)
//
//	// Lower AIC is better
//	if m1.AIC < m2.AIC {
//	    // Use m1
//	}
//
// # Residual Analysis
//
// Residuals returns the ARMA-stage residuals; test them with stats.LjungBox
// to check whether the chosen order left autocorrelation behind.
package arima
