package calculator

import "SignalSentinel/internal/model"

// RSI computes the Wilder-smoothed relative strength index series.
// Requires at least period+1 closes; the first value belongs to close index
// period. A window with neither gains nor losses reads 50.
func RSI(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain := wilder(gains, period)
	avgLoss := wilder(losses, period)
	out := make([]float64, len(avgGain))
	for i := range avgGain {
		out[i] = rsiValue(avgGain[i], avgLoss[i])
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50
	case avgLoss == 0:
		return 100
	case avgGain == 0:
		return 0
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// StochRSI applies the stochastic oscillator to the RSI series, then
// smooths it with an SMA(k) for %K and an SMA(d) of %K for %D. Points are
// emitted once %D is defined.
func StochRSI(closes []float64, rsiPeriod, stochPeriod, kPeriod, dPeriod int) []model.StochRSIPoint {
	rsi := RSI(closes, rsiPeriod)
	if stochPeriod <= 0 || len(rsi) < stochPeriod {
		return nil
	}

	stoch := make([]float64, 0, len(rsi)-stochPeriod+1)
	for i := stochPeriod - 1; i < len(rsi); i++ {
		hi, lo := highest(rsi[i-stochPeriod+1:i+1]), lowest(rsi[i-stochPeriod+1:i+1])
		if hi == lo {
			stoch = append(stoch, 50)
			continue
		}
		stoch = append(stoch, clampPercent((rsi[i]-lo)/(hi-lo)*100))
	}

	k := SMA(stoch, kPeriod)
	d := SMA(k, dPeriod)
	if len(d) == 0 {
		return nil
	}
	for i := range k {
		k[i] = clampPercent(k[i])
	}
	for i := range d {
		d[i] = clampPercent(d[i])
	}

	k = tail(k, len(d))
	stoch = tail(stoch, len(d))
	out := make([]model.StochRSIPoint, len(d))
	for i := range d {
		out[i] = model.StochRSIPoint{StochRSI: stoch[i], K: k[i], D: d[i]}
	}
	return out
}

// clampPercent pins rounding drift from the running sums back into [0, 100].
func clampPercent(v float64) float64 {
	return max(0, min(100, v))
}

// CMO computes the Chande momentum oscillator over the last period changes.
func CMO(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}
	out := make([]float64, 0, len(closes)-period)
	for i := period; i < len(closes); i++ {
		var up, down float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				up += change
			} else {
				down -= change
			}
		}
		if up+down == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, 100*(up-down)/(up+down))
	}
	return out
}
