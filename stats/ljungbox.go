package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult represents the result of a Ljung-Box test for
// autocorrelation in residuals.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox tests whether residuals exhibit autocorrelation up to maxLag.
// The null hypothesis is that the residuals are independently distributed;
// a p-value below 0.05 rejects it. fitdf is the number of parameters
// estimated by the model that produced the residuals (p+q for an ARIMA
// fit), subtracted from the degrees of freedom.
func LjungBox(residuals []float64, maxLag, fitdf int) (*LjungBoxResult, error) {
	n := len(residuals)
	if n < 3 {
		return nil, fmt.Errorf("stats: ljung-box needs at least 3 residuals, have %d: %w", n, ErrInsufficientData)
	}
	if maxLag < 1 || maxLag >= n {
		return nil, fmt.Errorf("stats: ljung-box lag %d out of range for %d residuals: %w", maxLag, n, ErrInvalidArgument)
	}

	acf := ACF(residuals, maxLag)
	if acf == nil {
		return nil, fmt.Errorf("stats: ljung-box on constant residuals: %w", ErrInvalidArgument)
	}

	// Q = n(n+2) * sum_{k=1}^{m} acf_k^2 / (n-k)
	q := 0.0
	for k := 1; k <= maxLag; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	dof := maxLag - fitdf
	if dof < 1 {
		dof = 1
	}

	chi2 := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi2.Survival(q),
		Lags:      maxLag,
		DOF:       dof,
	}, nil
}
