// Package regression implements five interchangeable regression strategies
// for paired yearly series: ordinary least squares, polynomial, LOWESS,
// Gaussian process, and ARIMA with an exogenous regressor.
//
// Every strategy follows the same steps: discover the best lag between the
// two series, align them at that lag, fit the method-specific estimator,
// predict a single value for the configured horizon year, and report the
// standardized metrics bundle. Results share one shape (Result) regardless
// of method, and each strategy optionally scores itself with
// forward-chaining cross-validation.
//
// TrendRegression dispatches to a strategy by name and extends the fitted
// curve across a horizon axis using the chosen method's own
// forward-prediction rule.
package regression
