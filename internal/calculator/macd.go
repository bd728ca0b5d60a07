package calculator

import "SignalSentinel/internal/model"

// MACD computes the EMA(fast) - EMA(slow) line and its EMA(signal) signal
// line. Points are emitted once the signal line is defined, so the first
// point belongs to close index slow+signal-2.
func MACD(closes []float64, fast, slow, signal int) []model.MACDPoint {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return nil
	}
	slowEMA := EMA(closes, slow)
	if slowEMA == nil {
		return nil
	}
	fastEMA := tail(EMA(closes, fast), len(slowEMA))

	line := make([]float64, len(slowEMA))
	for i := range slowEMA {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	sig := EMA(line, signal)
	if sig == nil {
		return nil
	}
	line = tail(line, len(sig))
	out := make([]model.MACDPoint, len(sig))
	for i := range sig {
		out[i] = model.MACDPoint{Line: line[i], Signal: sig[i], Histogram: line[i] - sig[i]}
	}
	return out
}
