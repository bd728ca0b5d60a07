package calculator

import "math"

// cciConstant scales the mean deviation so most values fall within ±100.
const cciConstant = 0.015

// CCI computes the commodity channel index of the typical price
// (high+low+close)/3. A window with zero mean deviation reads 0.
func CCI(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if len(highs) != n || len(lows) != n {
		return nil
	}
	tp := make([]float64, n)
	for i := range tp {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3
	}
	mean := SMA(tp, period)
	out := make([]float64, len(mean))
	for i, m := range mean {
		dev := 0.0
		for _, v := range tp[i : i+period] {
			dev += math.Abs(v - m)
		}
		dev /= float64(period)
		if dev == 0 {
			continue
		}
		out[i] = (tp[i+period-1] - m) / (cciConstant * dev)
	}
	return out
}
