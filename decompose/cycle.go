package decompose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/sadityag/tenure-tracker/stats"
)

// CycleResult holds the reconstructed cyclical component tiled across the
// extended axis, the last tiled value as the forward prediction, and the
// reconstruction metrics against the detrended input.
type CycleResult struct {
	Cycle      []float64
	Prediction float64
	Metrics    stats.Metrics
}

// Cycle extracts the cyclical component of a detrended series by Fourier
// transform and inverse transform of its non-missing values, then tiles the
// reconstruction (repeat and truncate) out to span positions.
//
// The round trip is lossless: period and maxHarmonics are accepted for
// interface symmetry but do not filter harmonics, so the cycle reproduces
// the detrended input exactly over the historical range. True
// harmonic-limited filtering (keeping only the strongest frequency
// components) is a known gap left unimplemented rather than inferred.
//
// Metrics compare the reconstruction to the detrended input with a single
// parameter; at machine-zero residuals the information criterion is -Inf,
// which callers tolerate by policy.
func Cycle(detrended []float64, span, period, maxHarmonics int) (*CycleResult, error) {
	clean := make([]float64, 0, len(detrended))
	for _, v := range detrended {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	n := len(clean)
	if n < 2 {
		return nil, fmt.Errorf("decompose: cycle needs at least 2 valid points, have %d: %w", n, stats.ErrInsufficientData)
	}
	if span < 0 {
		return nil, fmt.Errorf("decompose: cycle span %d: %w", span, stats.ErrInvalidArgument)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, clean)
	recon := fft.Sequence(nil, coeffs)
	// The gonum transform pair is unnormalized; the round trip scales the
	// sequence by its length.
	for i := range recon {
		recon[i] /= float64(n)
	}

	cycle := make([]float64, span)
	for i := range cycle {
		cycle[i] = recon[i%n]
	}

	prediction := math.NaN()
	if span > 0 {
		prediction = cycle[span-1]
	}

	m, err := stats.Evaluate(clean, recon, 1)
	if err != nil {
		return nil, fmt.Errorf("decompose: cycle metrics: %w", err)
	}

	return &CycleResult{Cycle: cycle, Prediction: prediction, Metrics: m}, nil
}
