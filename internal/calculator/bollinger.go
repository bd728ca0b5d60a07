package calculator

import (
	"math"

	"SignalSentinel/internal/model"
)

// BollingerBands computes SMA(period) ± stdDev population standard deviations.
func BollingerBands(closes []float64, period int, stdDev float64) []model.BandPoint {
	middle := SMA(closes, period)
	if middle == nil {
		return nil
	}
	out := make([]model.BandPoint, len(middle))
	for i, mean := range middle {
		window := closes[i : i+period]
		sq := 0.0
		for _, v := range window {
			sq += (v - mean) * (v - mean)
		}
		sd := math.Sqrt(sq / float64(period))
		out[i] = model.BandPoint{
			Lower:  mean - stdDev*sd,
			Middle: mean,
			Upper:  mean + stdDev*sd,
		}
	}
	return out
}
