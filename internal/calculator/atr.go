package calculator

import (
	"math"

	"SignalSentinel/internal/model"
)

// TrueRange computes max(high-low, |high-prevClose|, |low-prevClose|) for
// every bar after the first.
func TrueRange(highs, lows, closes []float64) []float64 {
	n := len(closes)
	if n < 2 || len(highs) != n || len(lows) != n {
		return nil
	}
	out := make([]float64, n-1)
	for i := 1; i < n; i++ {
		out[i-1] = math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
	}
	return out
}

// ATR computes the Wilder-smoothed average true range. The first value
// belongs to close index period.
func ATR(highs, lows, closes []float64, period int) []float64 {
	return wilder(TrueRange(highs, lows, closes), period)
}

// Keltner computes EMA(emaPeriod) ± multiplier * ATR(atrPeriod).
func Keltner(highs, lows, closes []float64, emaPeriod, atrPeriod int, multiplier float64) []model.BandPoint {
	middle := EMA(closes, emaPeriod)
	atr := ATR(highs, lows, closes, atrPeriod)
	n := min(len(middle), len(atr))
	if n == 0 {
		return nil
	}
	middle, atr = tail(middle, n), tail(atr, n)
	out := make([]model.BandPoint, n)
	for i := range out {
		out[i] = model.BandPoint{
			Lower:  middle[i] - multiplier*atr[i],
			Middle: middle[i],
			Upper:  middle[i] + multiplier*atr[i],
		}
	}
	return out
}
