package regression

import "errors"

var (
	// ErrUnsupportedMethod reports an unrecognized trend method name.
	ErrUnsupportedMethod = errors.New("regression: unsupported method")

	// ErrNoFeasibleModel reports that the ARIMA grid search exhausted
	// every candidate order without a successful fit.
	ErrNoFeasibleModel = errors.New("regression: no feasible model")
)
