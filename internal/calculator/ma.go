package calculator

// SMA computes the simple moving average series of values over period.
// The result has len(values)-period+1 points, or none when there is not
// enough data.
func SMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out = append(out, sum/float64(period))
	for i := period; i < len(values); i++ {
		sum = sum - values[i-period] + values[i]
		out = append(out, sum/float64(period))
	}
	return out
}

// EMA computes the exponential moving average seeded with the SMA of the
// first period values, using k = 2/(period+1).
func EMA(values []float64, period int) []float64 {
	seed := SMA(values[:min(len(values), period)], period)
	if seed == nil {
		return nil
	}
	k := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)
	prev := seed[0]
	out = append(out, prev)
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out = append(out, prev)
	}
	return out
}

// VWMA computes the volume weighted moving average of closes. A window
// without volume falls back to the plain mean of its closes.
func VWMA(closes, volumes []float64, period int) []float64 {
	n := len(closes)
	if period <= 0 || n < period || len(volumes) != n {
		return nil
	}
	out := make([]float64, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		var pv, vol, sum float64
		for j := i - period + 1; j <= i; j++ {
			pv += closes[j] * volumes[j]
			vol += volumes[j]
			sum += closes[j]
		}
		if vol == 0 {
			out = append(out, sum/float64(period))
			continue
		}
		out = append(out, pv/vol)
	}
	return out
}

// wilder applies Wilder smoothing: the first value is the mean of the first
// period inputs, each following value is (prev*(period-1)+x)/period.
func wilder(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)
	avg := 0.0
	for i := 0; i < period; i++ {
		avg += values[i]
	}
	avg /= float64(period)
	out = append(out, avg)
	for i := period; i < len(values); i++ {
		avg = (avg*float64(period-1) + values[i]) / float64(period)
		out = append(out, avg)
	}
	return out
}

// tail returns the last n elements of values.
func tail[T any](values []T, n int) []T {
	if n >= len(values) {
		return values
	}
	return values[len(values)-n:]
}
