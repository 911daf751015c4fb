package calculator

// Resample maps values onto exactly n points using linear interpolation between
// neighbouring samples, so a long series narrows smoothly and a short one widens
// without stair steps. Empty input yields empty output.
func Resample(values []float64, n int) []float64 {
	if len(values) == 0 || n <= 0 {
		return []float64{}
	}
	if len(values) == n {
		return values
	}
	out := make([]float64, n)
	if len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	if n == 1 {
		out[0] = values[0]
		return out
	}

	last := len(values) - 1
	for i := 0; i < n; i++ {
		pos := float64(i) * float64(last) / float64(n-1)
		idx := int(pos)
		if idx >= last {
			out[i] = values[last]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx] + frac*(values[idx+1]-values[idx])
	}
	return out
}

// ClampWidth bounds a chart width to [lo, hi].
func ClampWidth(w, lo, hi int) int {
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}
