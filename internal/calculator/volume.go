package calculator

// OBV computes on-balance volume starting from zero at the first bar.
func OBV(closes, volumes []float64) []float64 {
	n := len(closes)
	if n == 0 || len(volumes) != n {
		return nil
	}
	out := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			out[i] = out[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			out[i] = out[i-1] - volumes[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// CMF computes the Chaikin money flow: the sum of money flow volume divided
// by the sum of volume over period. A window without volume reads 0.
func CMF(highs, lows, closes, volumes []float64, period int) []float64 {
	n := len(closes)
	if period <= 0 || n < period || len(highs) != n || len(lows) != n || len(volumes) != n {
		return nil
	}
	mfv := make([]float64, n)
	for i := range mfv {
		if rng := highs[i] - lows[i]; rng != 0 {
			mfv[i] = ((closes[i] - lows[i]) - (highs[i] - closes[i])) / rng * volumes[i]
		}
	}
	out := make([]float64, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		var flow, vol float64
		for j := i - period + 1; j <= i; j++ {
			flow += mfv[j]
			vol += volumes[j]
		}
		if vol == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, flow/vol)
	}
	return out
}
