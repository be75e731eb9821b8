package arima

import (
	"errors"
	"fmt"
	"math"

	"github.com/sadityag/tenure-tracker/stats"
)

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// Model represents an ARIMA model driven by a single exogenous regressor.
// The response is first regressed on the exogenous series, then the
// regression errors are modeled as an ARIMA(p,d,q) process.
type Model struct {
	Order      Order
	ExogCoeffs []float64 // Regression stage [intercept, slope]
	ARCoeffs   []float64 // AR coefficients (phi)
	MACoeffs   []float64 // MA coefficients (theta)
	Intercept  float64   // Mean of the differenced regression errors
	Variance   float64   // Residual variance
	AIC        float64
	AICc       float64 // Corrected AIC for small sample sizes
	BIC        float64
	LogLik     float64

	fitted     bool
	y          []float64
	w          []float64 // Differenced regression errors
	tails      []float64 // Last value at each differencing level, for integration
	residuals  []float64 // ARMA residuals on the differenced scale
	fittedVals []float64 // One-step fitted values on the original scale
}

// New creates a new model with the specified order.
func New(p, d, q int) *Model {
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, p),
		MACoeffs: make([]float64, q),
	}
}

// Fit fits the model to y against the exogenous regressor exog. The two
// series must be aligned pairwise and equally long.
func (m *Model) Fit(y, exog []float64) error {
	if len(y) != len(exog) {
		return fmt.Errorf("arima: series lengths %d vs %d", len(y), len(exog))
	}
	n := len(y)
	p, d, q := m.Order.P, m.Order.D, m.Order.Q
	minLen := d + max(p, q) + 2
	if n < minLen {
		return fmt.Errorf("arima: order (%d,%d,%d) needs at least %d points, have %d", p, d, q, minLen, n)
	}

	m.y = append([]float64(nil), y...)

	// Regression stage
	m.ExogCoeffs = olsLine(exog, y)
	e := make([]float64, n)
	for i := range y {
		e[i] = y[i] - (m.ExogCoeffs[0] + m.ExogCoeffs[1]*exog[i])
	}

	// Difference the regression errors, keeping the last value at each
	// level so forecasts can be integrated back.
	m.tails = make([]float64, d)
	for k := 0; k < d; k++ {
		m.tails[k] = e[len(e)-1]
		e = stats.Difference(e, 1)
	}
	m.w = e

	if err := m.fitCSS(); err != nil {
		return err
	}
	m.calculateIC()

	// One-step fitted values on the original scale. The ARMA residual at
	// differenced index t-d is exactly the one-step error of y[t].
	m.fittedVals = make([]float64, n)
	for t := 0; t < n; t++ {
		if t < d {
			m.fittedVals[t] = y[t]
			continue
		}
		m.fittedVals[t] = y[t] - m.residuals[t-d]
	}

	m.fitted = true
	return nil
}

// fitCSS fits the ARMA stage using Conditional Sum of Squares estimation.
func (m *Model) fitCSS() error {
	w := m.w
	n := len(w)
	p := m.Order.P
	q := m.Order.Q

	if p == 0 && q == 0 {
		// Just a white noise model
		mean := 0.0
		for _, v := range w {
			mean += v
		}
		m.Intercept = mean / float64(n)
		m.Variance = 0
		for _, v := range w {
			diff := v - m.Intercept
			m.Variance += diff * diff
		}
		m.Variance /= float64(n - 1)
		m.residuals = make([]float64, n)
		for i, v := range w {
			m.residuals[i] = v - m.Intercept
		}
		return nil
	}

	// Yule-Walker initial AR estimates
	if p > 0 {
		if acf := stats.ACF(w, p); acf != nil {
			if phi := yuleWalker(acf, p); len(phi) == p {
				m.ARCoeffs = phi
			}
		}
	}

	// Initialize MA coefficients to small values
	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}

	return m.optimizeCSS(w)
}

// optimizeCSS optimizes parameters using conditional sum of squares.
func (m *Model) optimizeCSS(w []float64) error {
	n := len(w)
	p := m.Order.P
	q := m.Order.Q

	mean := 0.0
	for _, v := range w {
		mean += v
	}
	m.Intercept = mean / float64(n)

	maxIter := 100
	tolerance := 1e-6
	learningRate := 0.01

	startIdx := max(p, q)
	for iter := 0; iter < maxIter; iter++ {
		residuals := make([]float64, n)
		prevSSE := 0.0

		for t := startIdx; t < n; t++ {
			pred := m.Intercept
			for i := 0; i < p && t-i-1 >= 0; i++ {
				pred += m.ARCoeffs[i] * (w[t-i-1] - m.Intercept)
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				pred += m.MACoeffs[i] * residuals[t-i-1]
			}
			residuals[t] = w[t] - pred
			prevSSE += residuals[t] * residuals[t]
		}

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := startIdx; t < n; t++ {
			for i := 0; i < p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (w[t-i-1] - m.Intercept)
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}

		for i := 0; i < p; i++ {
			m.ARCoeffs[i] -= learningRate * arGrad[i] / float64(n)
			// Constrain for stationarity
			m.ARCoeffs[i] = math.Max(-0.99, math.Min(0.99, m.ARCoeffs[i]))
		}
		for i := 0; i < q; i++ {
			m.MACoeffs[i] -= learningRate * maGrad[i] / float64(n)
			// Constrain for invertibility
			m.MACoeffs[i] = math.Max(-0.99, math.Min(0.99, m.MACoeffs[i]))
		}

		newSSE := 0.0
		for t := startIdx; t < n; t++ {
			pred := m.Intercept
			for i := 0; i < p && t-i-1 >= 0; i++ {
				pred += m.ARCoeffs[i] * (w[t-i-1] - m.Intercept)
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				pred += m.MACoeffs[i] * residuals[t-i-1]
			}
			residuals[t] = w[t] - pred
			newSSE += residuals[t] * residuals[t]
		}

		if math.Abs(prevSSE-newSSE) < tolerance {
			break
		}
	}

	// Final residuals and variance
	m.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		if t < startIdx {
			m.residuals[t] = w[t] - m.Intercept
			continue
		}
		pred := m.Intercept
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * (w[t-i-1] - m.Intercept)
		}
		for i := 0; i < q && t-i-1 >= 0; i++ {
			pred += m.MACoeffs[i] * m.residuals[t-i-1]
		}
		m.residuals[t] = w[t] - pred
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	if count > p+q+1 {
		m.Variance = sse / float64(count-p-q-1)
	} else {
		m.Variance = sse / float64(count)
	}

	return nil
}

// calculateIC calculates AIC, AICc, and BIC.
func (m *Model) calculateIC() {
	n := len(m.residuals)
	k := m.Order.P + m.Order.Q + 1 // AR + MA + intercept

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.Variance > 0 {
		m.LogLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	m.AIC = -2*m.LogLik + 2*float64(k)

	kf := float64(k)
	nf := float64(n)
	if nf-kf-1 > 0 {
		m.AICc = m.AIC + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		m.AICc = math.Inf(1)
	}

	m.BIC = -2*m.LogLik + kf*math.Log(nf)
}

// Forecast generates forecasts on the original scale for the specified
// number of steps ahead. exog must hold one future regressor value per step.
func (m *Model) Forecast(steps int, exog []float64) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("arima: model must be fitted before forecasting")
	}
	if steps < 1 {
		return nil, errors.New("arima: steps must be at least 1")
	}
	if len(exog) != steps {
		return nil, fmt.Errorf("arima: %d exogenous values for %d steps", len(exog), steps)
	}

	p, d, q := m.Order.P, m.Order.D, m.Order.Q
	n := len(m.w)

	extW := make([]float64, n+steps)
	copy(extW, m.w)
	extResiduals := make([]float64, n+steps)
	copy(extResiduals, m.residuals)
	tails := append([]float64(nil), m.tails...)

	forecasts := make([]float64, steps)
	for h := 0; h < steps; h++ {
		t := n + h
		pred := m.Intercept

		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * (extW[t-i-1] - m.Intercept)
		}
		// Future residuals are 0
		for i := 0; i < q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += m.MACoeffs[i] * extResiduals[t-i-1]
		}

		extW[t] = pred
		extResiduals[t] = 0

		// Integrate back through each differencing level
		eNext := pred
		cur := pred
		for k := d - 1; k >= 0; k-- {
			tails[k] += cur
			cur = tails[k]
		}
		if d > 0 {
			eNext = tails[0]
		}

		forecasts[h] = m.ExogCoeffs[0] + m.ExogCoeffs[1]*exog[h] + eNext
	}

	return forecasts, nil
}

// Residuals returns the ARMA-stage residuals on the differenced scale.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the one-step fitted values on the original scale.
// The first d values carry the observations through unchanged.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// olsLine regresses y on x with an intercept, returning [intercept, slope].
// A zero-variance regressor collapses to the mean model.
func olsLine(x, y []float64) []float64 {
	n := float64(len(x))
	xbar, ybar := 0.0, 0.0
	for i := range x {
		xbar += x[i]
		ybar += y[i]
	}
	xbar /= n
	ybar /= n

	sxx, sxy := 0.0, 0.0
	for i := range x {
		dx := x[i] - xbar
		sxx += dx * dx
		sxy += dx * (y[i] - ybar)
	}
	if sxx == 0 {
		return []float64{ybar, 0}
	}
	slope := sxy / sxx
	return []float64{ybar - slope*xbar, slope}
}

// yuleWalker estimates AR coefficients from the ACF using the
// Levinson-Durbin recursion.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		lambda /= v

		newPhi := make([]float64, i+1)
		for j := 0; j < i; j++ {
			newPhi[j] = phi[j] - lambda*phi[i-1-j]
		}
		newPhi[i] = lambda
		copy(phi, newPhi)

		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}
	}

	return phi
}
