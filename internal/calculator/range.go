package calculator

import (
	"math"

	"SignalSentinel/internal/model"
)

func highest(values []float64) float64 {
	h := math.Inf(-1)
	for _, v := range values {
		if v > h {
			h = v
		}
	}
	return h
}

func lowest(values []float64) float64 {
	l := math.Inf(1)
	for _, v := range values {
		if v < l {
			l = v
		}
	}
	return l
}

// midpoint returns (highest high + lowest low) / 2 of the window ending at i.
func midpoint(highs, lows []float64, i, period int) float64 {
	start := i - period + 1
	return (highest(highs[start:i+1]) + lowest(lows[start:i+1])) / 2
}

// WilliamsR computes Williams %R: (HH - close) / (HH - LL) * -100.
// A window with no range reads -50.
func WilliamsR(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if period <= 0 || n < period || len(highs) != n || len(lows) != n {
		return nil
	}
	out := make([]float64, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		hh := highest(highs[i-period+1 : i+1])
		ll := lowest(lows[i-period+1 : i+1])
		if hh == ll {
			out = append(out, -50)
			continue
		}
		out = append(out, (hh-closes[i])/(hh-ll)*-100)
	}
	return out
}

// Ichimoku computes the conversion, base and leading span lines without
// forward displacement. Points start once the span B window is filled.
func Ichimoku(highs, lows []float64, conversion, base, spanB int) []model.IchimokuPoint {
	n := len(highs)
	warmup := max(conversion, base, spanB)
	if conversion <= 0 || base <= 0 || spanB <= 0 || n < warmup || len(lows) != n {
		return nil
	}
	out := make([]model.IchimokuPoint, 0, n-warmup+1)
	for i := warmup - 1; i < n; i++ {
		conv := midpoint(highs, lows, i, conversion)
		bas := midpoint(highs, lows, i, base)
		out = append(out, model.IchimokuPoint{
			Conversion: conv,
			Base:       bas,
			SpanA:      (conv + bas) / 2,
			SpanB:      midpoint(highs, lows, i, spanB),
		})
	}
	return out
}
