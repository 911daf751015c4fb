package calculator

import (
	"math"
	"testing"
)

func approxEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestResample_Lengths(t *testing.T) {
	inputs := [][]float64{
		{1},
		{1, 2},
		{3, 1, 4, 1, 5},
		make([]float64, 500),
	}
	for _, in := range inputs {
		for _, n := range []int{1, 2, 3, 20, 77, 120, 1000} {
			if got := Resample(in, n); len(got) != n {
				t.Errorf("len(in)=%d n=%d: expected %d values, got %d", len(in), n, n, len(got))
			}
		}
	}
}

func TestResample_Identity(t *testing.T) {
	in := []float64{5, 4, 3, 9}
	if got := Resample(in, len(in)); !approxEqual(got, in) {
		t.Errorf("expected input unchanged, got %v", got)
	}
}

func TestResample_SingleValue(t *testing.T) {
	got := Resample([]float64{7.5}, 4)
	if !approxEqual(got, []float64{7.5, 7.5, 7.5, 7.5}) {
		t.Errorf("expected repeated value, got %v", got)
	}
}

func TestResample_Interpolates(t *testing.T) {
	tests := []struct {
		in   []float64
		n    int
		want []float64
	}{
		{[]float64{0, 10}, 3, []float64{0, 5, 10}},
		{[]float64{0, 10}, 5, []float64{0, 2.5, 5, 7.5, 10}},
		{[]float64{0, 10, 20, 30, 40}, 3, []float64{0, 20, 40}},
		{[]float64{0, 10, 0}, 5, []float64{0, 5, 10, 5, 0}},
	}
	for _, tt := range tests {
		if got := Resample(tt.in, tt.n); !approxEqual(got, tt.want) {
			t.Errorf("Resample(%v, %d): expected %v, got %v", tt.in, tt.n, tt.want, got)
		}
	}
}

func TestResample_KeepsEndpoints(t *testing.T) {
	in := []float64{2, 8, 3, 9, 4, 1, 6}
	got := Resample(in, 40)
	if got[0] != in[0] || got[len(got)-1] != in[len(in)-1] {
		t.Errorf("expected endpoints %v..%v, got %v..%v", in[0], in[len(in)-1], got[0], got[len(got)-1])
	}
}

func TestResample_Idempotent(t *testing.T) {
	in := []float64{1, 3, 2, 8, 5, 4, 9, 0, 2}
	once := Resample(in, 25)
	twice := Resample(once, 25)
	if !approxEqual(once, twice) {
		t.Errorf("resampling to the same length twice changed values:\n%v\n%v", once, twice)
	}
}

func TestResample_Empty(t *testing.T) {
	if got := Resample(nil, 10); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct{ in, want int }{{5, 20}, {64, 64}, {300, 120}}
	for _, tt := range tests {
		if got := ClampWidth(tt.in, 20, 120); got != tt.want {
			t.Errorf("ClampWidth(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
