package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	CriticalVals map[string]float64 // Critical values at 1%, 5%, 10%
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller test for a unit root.
// The null hypothesis is that the series has a unit root (is non-stationary);
// a p-value below 0.05 rejects it. maxLag <= 0 selects the default
// floor((n-1)^(1/3)) lag order.
func ADF(values []float64, maxLag int) (*ADFResult, error) {
	n := len(values)
	if n < 8 {
		return nil, fmt.Errorf("stats: adf needs at least 8 observations, have %d: %w", n, ErrInsufficientData)
	}

	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := Difference(values, 1)

	// Regression: delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i * delta_y_{t-i}).
	// The test statistic is the t-stat on beta.
	nObs := n - maxLag - 1
	k := 2 + maxLag
	if nObs <= k {
		return nil, fmt.Errorf("stats: adf has %d observations for %d regressors: %w", nObs, k, ErrInsufficientData)
	}

	design := mat.NewDense(nObs, k, nil)
	resp := mat.NewVecDense(nObs, nil)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		resp.SetVec(i, diff[t])
		design.Set(i, 0, 1)
		design.Set(i, 1, values[t])
		for j := 1; j <= maxLag; j++ {
			design.Set(i, 1+j, diff[t-j])
		}
	}

	coeffs, se, err := olsWithStdErrors(design, resp)
	if err != nil {
		return nil, fmt.Errorf("stats: adf regression: %w", err)
	}

	tStat := coeffs[1] / se[1]

	// Critical values for the constant-only regression.
	criticalVals := map[string]float64{
		"1%":  -3.43,
		"5%":  -2.86,
		"10%": -2.57,
	}

	pValue := mackinnonPValue(tStat)

	return &ADFResult{
		Statistic:    tStat,
		PValue:       pValue,
		Lags:         maxLag,
		NObs:         nObs,
		CriticalVals: criticalVals,
		IsStationary: pValue < 0.05,
	}, nil
}

// olsWithStdErrors solves y = X*beta by normal equations and returns the
// coefficients with their standard errors.
func olsWithStdErrors(x *mat.Dense, y *mat.VecDense) (coeffs, stdErrors []float64, err error) {
	n, k := x.Dims()

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, nil, err
	}

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	sse := 0.0
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		sse += r * r
	}

	if n <= k {
		return nil, nil, ErrInsufficientData
	}
	s2 := sse / float64(n-k)

	coeffs = make([]float64, k)
	stdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		stdErrors[i] = math.Sqrt(s2 * xtxInv.At(i, i))
	}
	return coeffs, stdErrors, nil
}

// mackinnonPValue approximates the p-value for the ADF statistic under the
// constant-only regression, stepping through the MacKinnon (1994) asymptotic
// critical values.
func mackinnonPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}
