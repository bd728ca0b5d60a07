package calculator

import (
	"math"

	"SignalSentinel/internal/model"
)

// ADX computes Wilder's average directional index together with the +DI and
// -DI lines. True range and directional movement are Wilder-smoothed over
// period, DX is averaged over another period, so the first point belongs to
// close index 2*period-1.
func ADX(highs, lows, closes []float64, period int) []model.ADXPoint {
	n := len(closes)
	if period <= 0 || n < 2*period || len(highs) != n || len(lows) != n {
		return nil
	}

	pdm := make([]float64, n-1)
	mdm := make([]float64, n-1)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			pdm[i-1] = up
		}
		if down > up && down > 0 {
			mdm[i-1] = down
		}
	}

	tr := wilder(TrueRange(highs, lows, closes), period)
	spdm := wilder(pdm, period)
	smdm := wilder(mdm, period)

	pdi := make([]float64, len(tr))
	mdi := make([]float64, len(tr))
	dx := make([]float64, len(tr))
	for i := range tr {
		if tr[i] != 0 {
			pdi[i] = 100 * spdm[i] / tr[i]
			mdi[i] = 100 * smdm[i] / tr[i]
		}
		if sum := pdi[i] + mdi[i]; sum != 0 {
			dx[i] = 100 * math.Abs(pdi[i]-mdi[i]) / sum
		}
	}

	adx := wilder(dx, period)
	pdi, mdi = tail(pdi, len(adx)), tail(mdi, len(adx))
	out := make([]model.ADXPoint, len(adx))
	for i := range adx {
		out[i] = model.ADXPoint{ADX: adx[i], PDI: pdi[i], MDI: mdi[i]}
	}
	return out
}
