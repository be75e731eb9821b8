package gp

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Hyperparameter search bounds, in log space.
const (
	logBoundLo = -11.512925464970229 // ln(1e-5)
	logBoundHi = 11.512925464970229  // ln(1e5)
)

// Config holds the kernel initialization and optimizer settings for a fit.
type Config struct {
	// LengthScale is the initial RBF kernel length scale.
	LengthScale float64
	// NoiseLevel is the initial white-noise variance added to the kernel
	// diagonal.
	NoiseLevel float64
	// Restarts is the number of additional optimizer runs from random
	// hyperparameter draws beyond the run from the initial values.
	Restarts int
	// Seed drives the random restart draws.
	Seed int64
}

// DefaultConfig returns the standard fit configuration.
func DefaultConfig() Config {
	return Config{
		LengthScale: 1.0,
		NoiseLevel:  0.1,
		Restarts:    5,
		Seed:        42,
	}
}

// Regressor is a one-dimensional Gaussian process fitted with an RBF kernel
// plus white noise. Hyperparameters are chosen by minimizing the negative
// log marginal likelihood.
type Regressor struct {
	x     []float64
	chol  mat.Cholesky
	alpha *mat.VecDense

	lengthScale float64
	noiseVar    float64
}

// Fit trains a Gaussian process on the observations. The kernel length scale
// and noise variance are optimized in log space with Nelder-Mead, restarting
// from random draws per cfg.Restarts; when every optimizer run fails the
// initial hyperparameters are kept as-is.
func Fit(x, y []float64, cfg Config) (*Regressor, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("gp: input lengths %d vs %d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("gp: need at least 2 points, have %d", n)
	}
	if cfg.LengthScale <= 0 || cfg.NoiseLevel <= 0 {
		return nil, fmt.Errorf("gp: length scale and noise level must be positive, have %g and %g", cfg.LengthScale, cfg.NoiseLevel)
	}

	xs := make([]float64, n)
	copy(xs, x)
	yVec := mat.NewVecDense(n, nil)
	for i, v := range y {
		yVec.SetVec(i, v)
	}

	nlml := func(theta []float64) float64 {
		ell := math.Exp(theta[0])
		noise := math.Exp(theta[1])
		var chol mat.Cholesky
		if !chol.Factorize(kernelMatrix(xs, ell, noise)) {
			return math.Inf(1)
		}
		alpha := mat.NewVecDense(n, nil)
		if err := chol.SolveVecTo(alpha, yVec); err != nil {
			return math.Inf(1)
		}
		return 0.5*mat.Dot(yVec, alpha) + 0.5*chol.LogDet() + 0.5*float64(n)*math.Log(2*math.Pi)
	}

	problem := optimize.Problem{Func: nlml}
	rng := rand.New(rand.NewSource(cfg.Seed))

	init := []float64{math.Log(cfg.LengthScale), math.Log(cfg.NoiseLevel)}
	best := make([]float64, len(init))
	copy(best, init)
	bestVal := math.Inf(1)
	found := false

	for run := 0; run <= cfg.Restarts; run++ {
		start := make([]float64, len(init))
		if run == 0 {
			copy(start, init)
		} else {
			for i := range start {
				start[i] = logBoundLo + rng.Float64()*(logBoundHi-logBoundLo)
			}
		}

		result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
		if err != nil || result == nil {
			continue
		}
		if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
			continue
		}
		if !found || result.F < bestVal {
			copy(best, result.X)
			bestVal = result.F
			found = true
		}
	}

	r := &Regressor{
		x:           xs,
		lengthScale: math.Exp(best[0]),
		noiseVar:    math.Exp(best[1]),
	}
	if !r.chol.Factorize(kernelMatrix(xs, r.lengthScale, r.noiseVar)) {
		return nil, fmt.Errorf("gp: kernel matrix is not positive definite")
	}
	r.alpha = mat.NewVecDense(n, nil)
	if err := r.chol.SolveVecTo(r.alpha, yVec); err != nil {
		return nil, fmt.Errorf("gp: solving for dual coefficients: %w", err)
	}
	return r, nil
}

// Predict returns the posterior mean and standard deviation at each query
// point. The predictive variance includes the fitted noise term. NaN queries
// yield NaN predictions.
func (r *Regressor) Predict(xs []float64) (mean, std []float64, err error) {
	n := len(r.x)
	mean = make([]float64, len(xs))
	std = make([]float64, len(xs))

	kstar := mat.NewVecDense(n, nil)
	solved := mat.NewVecDense(n, nil)
	for i, q := range xs {
		if math.IsNaN(q) {
			mean[i] = math.NaN()
			std[i] = math.NaN()
			continue
		}
		for j, xj := range r.x {
			kstar.SetVec(j, rbf(xj, q, r.lengthScale))
		}
		mean[i] = mat.Dot(kstar, r.alpha)

		if err := r.chol.SolveVecTo(solved, kstar); err != nil {
			return nil, nil, fmt.Errorf("gp: predictive variance at %g: %w", q, err)
		}
		variance := 1 + r.noiseVar - mat.Dot(kstar, solved)
		if variance < 0 {
			variance = 0
		}
		std[i] = math.Sqrt(variance)
	}
	return mean, std, nil
}

// LengthScale returns the fitted RBF length scale.
func (r *Regressor) LengthScale() float64 { return r.lengthScale }

// NoiseVariance returns the fitted white-noise variance.
func (r *Regressor) NoiseVariance() float64 { return r.noiseVar }

// NumParams returns the number of optimized kernel hyperparameters.
func (r *Regressor) NumParams() int { return 2 }

func kernelMatrix(x []float64, ell, noise float64) *mat.SymDense {
	n := len(x)
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rbf(x[i], x[j], ell)
			if i == j {
				v += noise
			}
			k.SetSym(i, j, v)
		}
	}
	return k
}

func rbf(a, b, ell float64) float64 {
	d := (a - b) / ell
	return math.Exp(-0.5 * d * d)
}
