package stats

// Difference applies d rounds of first differencing to values.
// Each round shortens the slice by one; d <= 0 returns a copy.
func Difference(values []float64, d int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for k := 0; k < d && len(out) > 1; k++ {
		next := make([]float64, len(out)-1)
		for i := 1; i < len(out); i++ {
			next[i-1] = out[i] - out[i-1]
		}
		out = next
	}
	return out
}
