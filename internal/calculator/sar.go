package calculator

import "math"

// ParabolicSAR computes Wilder's stop-and-reverse series, one value per bar.
// The trend starts long with the first bar's low as SAR. The acceleration
// factor starts at step and grows by step on each new extreme up to max.
func ParabolicSAR(highs, lows []float64, step, maxStep float64) []float64 {
	n := len(highs)
	if n == 0 || len(lows) != n || step <= 0 || maxStep < step {
		return nil
	}

	out := make([]float64, n)
	up := true
	af := step
	ep := highs[0]
	sar := lows[0]
	out[0] = sar

	for i := 1; i < n; i++ {
		sar += af * (ep - sar)
		if up {
			sar = math.Min(sar, lows[i-1])
			if i > 1 {
				sar = math.Min(sar, lows[i-2])
			}
			if lows[i] < sar {
				up, sar, ep, af = false, ep, lows[i], step
			} else if highs[i] > ep {
				ep = highs[i]
				af = math.Min(af+step, maxStep)
			}
		} else {
			sar = math.Max(sar, highs[i-1])
			if i > 1 {
				sar = math.Max(sar, highs[i-2])
			}
			if highs[i] > sar {
				up, sar, ep, af = true, ep, highs[i], step
			} else if lows[i] < ep {
				ep = lows[i]
				af = math.Min(af+step, maxStep)
			}
		}
		out[i] = sar
	}
	return out
}
