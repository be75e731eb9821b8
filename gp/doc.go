// Package gp implements one-dimensional Gaussian process regression with an
// RBF kernel plus additive white noise.
//
// Hyperparameters are selected by minimizing the negative log marginal
// likelihood with seeded random restarts, so fits are reproducible:
//
//	model, err := gp.Fit(x, y, gp.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	mean, std, err := model.Predict(queries)
//
// The predictive standard deviation includes the fitted noise level, so it
// stays strictly positive even at the training points.
package gp
