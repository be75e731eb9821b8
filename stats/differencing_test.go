package stats

import (
	"math"
	"testing"
)

func TestDifference(t *testing.T) {
	values := []float64{1, 3, 6, 10, 15}

	d1 := Difference(values, 1)
	expected1 := []float64{2, 3, 4, 5}
	if len(d1) != len(expected1) {
		t.Fatalf("first difference length %d, expected %d", len(d1), len(expected1))
	}
	for i := range expected1 {
		if math.Abs(d1[i]-expected1[i]) > 1e-12 {
			t.Errorf("d1[%d] = %f, expected %f", i, d1[i], expected1[i])
		}
	}

	d2 := Difference(values, 2)
	expected2 := []float64{1, 1, 1}
	if len(d2) != len(expected2) {
		t.Fatalf("second difference length %d, expected %d", len(d2), len(expected2))
	}
	for i := range expected2 {
		if math.Abs(d2[i]-expected2[i]) > 1e-12 {
			t.Errorf("d2[%d] = %f, expected %f", i, d2[i], expected2[i])
		}
	}
}

func TestDifferenceZeroOrder(t *testing.T) {
	values := []float64{4, 2, 7}

	d0 := Difference(values, 0)
	if len(d0) != len(values) {
		t.Fatalf("d=0 length %d, expected %d", len(d0), len(values))
	}
	for i := range values {
		if d0[i] != values[i] {
			t.Errorf("d0[%d] = %f, expected %f", i, d0[i], values[i])
		}
	}

	// Returned slice must be a copy
	d0[0] = -1
	if values[0] != 4 {
		t.Error("Difference with d=0 returned the input slice, not a copy")
	}
}

func TestDifferenceShortInput(t *testing.T) {
	d := Difference([]float64{7}, 3)
	if len(d) != 1 || d[0] != 7 {
		t.Errorf("single element should survive differencing, got %v", d)
	}

	if out := Difference(nil, 1); len(out) != 0 {
		t.Errorf("nil input should yield empty output, got %v", out)
	}
}
