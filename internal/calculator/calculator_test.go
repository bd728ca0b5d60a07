package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalSentinel/internal/model"
)

func risingSeries(n int, withVolume bool) model.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, n)
	for i := range candles {
		c := 100 + float64(i)
		candles[i] = model.Candle{
			Time:  base.Add(time.Duration(i) * time.Hour),
			Open:  c - 0.5,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
		if withVolume {
			candles[i].Volume = 1000 + float64(i%7)*10
		}
	}
	return model.NewPriceSeries("TEST", "1h", candles, 0)
}

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8}, got)

	assert.Empty(t, SMA([]float64{1, 2, 3}, 5))
	assert.Empty(t, SMA([]float64{1, 2, 3}, 0))
}

func TestEMA(t *testing.T) {
	// Seed is SMA(1,2,3)=2, k=0.5.
	got := EMA([]float64{1, 2, 3, 4, 5, 6}, 3)
	assert.Equal(t, []float64{2, 3, 4, 5}, got)

	assert.Empty(t, EMA([]float64{1, 2}, 3))
}

func TestRSI(t *testing.T) {
	got := RSI([]float64{1, 2, 1, 2}, 2)
	require.Len(t, got, 2)
	assert.InDelta(t, 50.0, got[0], 1e-9)
	assert.InDelta(t, 75.0, got[1], 1e-9)

	assert.Equal(t, []float64{100}, RSI([]float64{1, 2, 3}, 2))
	assert.Equal(t, []float64{0}, RSI([]float64{3, 2, 1}, 2))
	assert.Equal(t, []float64{50}, RSI([]float64{5, 5, 5}, 2))
	assert.Empty(t, RSI([]float64{1, 2}, 2))
}

func TestStochRSIFlatRSIReadsMidpoint(t *testing.T) {
	closes := risingSeries(60, false).Closes()
	points := StochRSI(closes, 14, 14, 3, 3)
	require.Len(t, points, 60-32+1)
	last := points[len(points)-1]
	assert.Equal(t, 50.0, last.K)
	assert.Equal(t, 50.0, last.D)
}

func TestStochRSIRange(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/4)
	}
	for _, p := range StochRSI(closes, 14, 14, 3, 3) {
		assert.GreaterOrEqual(t, p.K, 0.0)
		assert.LessOrEqual(t, p.K, 100.0)
		assert.GreaterOrEqual(t, p.D, 0.0)
		assert.LessOrEqual(t, p.D, 100.0)
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-1.1842378929335002e-15))
	assert.Equal(t, 100.0, clampPercent(100.00000000000001))
	assert.Equal(t, 42.5, clampPercent(42.5))
}

func TestMACDWarmup(t *testing.T) {
	closes := risingSeries(34, false).Closes()
	assert.Empty(t, MACD(closes[:33], 12, 26, 9))

	points := MACD(closes, 12, 26, 9)
	require.Len(t, points, 1)
	p := points[0]
	assert.InDelta(t, p.Line-p.Signal, p.Histogram, 1e-12)
	// Linear closes settle at a constant line of (26-12)/2 per unit slope.
	assert.InDelta(t, 7.0, p.Line, 1e-9)
}

func TestBollingerBands(t *testing.T) {
	bands := BollingerBands([]float64{1, 2, 3, 4, 5}, 5, 2)
	require.Len(t, bands, 1)
	assert.InDelta(t, 3.0, bands[0].Middle, 1e-12)
	assert.InDelta(t, 3+2*math.Sqrt2, bands[0].Upper, 1e-12)
	assert.InDelta(t, 3-2*math.Sqrt2, bands[0].Lower, 1e-12)

	flat := BollingerBands([]float64{7, 7, 7}, 3, 2)
	require.Len(t, flat, 1)
	assert.Equal(t, flat[0].Lower, flat[0].Upper)
}

func TestATR(t *testing.T) {
	highs := []float64{10, 11, 12, 11, 12, 13}
	lows := []float64{8, 9, 10, 9, 10, 11}
	closes := []float64{9, 10, 11, 10, 11, 12}

	assert.Equal(t, []float64{2, 2, 2, 2, 2}, TrueRange(highs, lows, closes))
	assert.Equal(t, []float64{2, 2, 2}, ATR(highs, lows, closes, 3))
	assert.Empty(t, ATR(highs[:3], lows[:3], closes[:3], 3))
}

func TestTrueRangeGap(t *testing.T) {
	// Gap up: |high - prevClose| dominates high - low.
	tr := TrueRange([]float64{100, 110}, []float64{95, 105}, []float64{99, 108})
	assert.Equal(t, []float64{11}, tr)
}

func TestWilliamsR(t *testing.T) {
	got := WilliamsR([]float64{3, 4, 5}, []float64{1, 2, 3}, []float64{2, 3, 4}, 3)
	assert.Equal(t, []float64{-25}, got)

	flat := WilliamsR([]float64{5, 5}, []float64{5, 5}, []float64{5, 5}, 2)
	assert.Equal(t, []float64{-50}, flat)
}

func TestCCI(t *testing.T) {
	prices := []float64{1, 2, 3}
	got := CCI(prices, prices, prices, 3)
	require.Len(t, got, 1)
	assert.InDelta(t, 100.0, got[0], 1e-9)

	flat := []float64{4, 4, 4}
	assert.Equal(t, []float64{0}, CCI(flat, flat, flat, 3))
}

func TestParabolicSARFollowsTrend(t *testing.T) {
	s := risingSeries(40, false)
	highs, lows := s.Highs(), s.Lows()
	sar := ParabolicSAR(highs, lows, 0.02, 0.2)
	require.Len(t, sar, 40)
	for i := 1; i < len(sar); i++ {
		assert.LessOrEqual(t, sar[i], lows[i], "bar %d", i)
	}

	// A collapse below the SAR flips the trend short.
	highs = append(highs, 50)
	lows = append(lows, 40)
	sar = ParabolicSAR(highs, lows, 0.02, 0.2)
	last := sar[len(sar)-1]
	assert.Greater(t, last, highs[len(highs)-1])
}

func TestADXTrending(t *testing.T) {
	s := risingSeries(30, false)
	points := ADX(s.Highs(), s.Lows(), s.Closes(), 14)
	require.Len(t, points, 30-28+1)
	last := points[len(points)-1]
	assert.InDelta(t, 100.0, last.ADX, 1e-9)
	assert.InDelta(t, 50.0, last.PDI, 1e-9)
	assert.Equal(t, 0.0, last.MDI)

	assert.Empty(t, ADX(s.Highs()[:27], s.Lows()[:27], s.Closes()[:27], 14))
}

func TestIchimoku(t *testing.T) {
	s := risingSeries(52, false)
	points := Ichimoku(s.Highs(), s.Lows(), 9, 26, 52)
	require.Len(t, points, 1)
	p := points[0]
	// Last high is 152; the lowest low of an n bar window is 151-n.
	assert.InDelta(t, 147.0, p.Conversion, 1e-9)
	assert.InDelta(t, 138.5, p.Base, 1e-9)
	assert.InDelta(t, (147.0+138.5)/2, p.SpanA, 1e-9)
	assert.InDelta(t, 125.5, p.SpanB, 1e-9)
}

func TestCMO(t *testing.T) {
	assert.Equal(t, []float64{100}, CMO([]float64{1, 2, 3}, 2))
	assert.Equal(t, []float64{0}, CMO([]float64{1, 2, 1}, 2))
	assert.Equal(t, []float64{0}, CMO([]float64{1, 1, 1}, 2))
}

func TestVolumeIndicators(t *testing.T) {
	closes := []float64{10, 11, 11, 9}
	volumes := []float64{100, 200, 300, 400}
	assert.Equal(t, []float64{0, 200, 200, -200}, OBV(closes, volumes))

	assert.Equal(t, []float64{(10*100 + 11*200) / 300.0}, VWMA(closes[:2], volumes[:2], 2))
	assert.Equal(t, []float64{10.5}, VWMA(closes[:2], []float64{0, 0}, 2))

	// Close at the high is full buying pressure.
	highs := []float64{11, 12}
	lows := []float64{9, 10}
	assert.Equal(t, []float64{1}, CMF(highs, lows, highs, []float64{5, 5}, 2))
	assert.Equal(t, []float64{0}, CMF(highs, lows, highs, []float64{0, 0}, 2))
}

func TestComputeAlignsEverySeriesToItsWarmup(t *testing.T) {
	const n = 250
	set := Compute(risingSeries(n, true))

	checks := []struct {
		name   string
		warmup int
		length int
	}{
		{"sma_short", set.ShortSMA.Warmup, set.ShortSMA.Len()},
		{"sma_long", set.LongSMA.Warmup, set.LongSMA.Len()},
		{"ema_short", set.ShortEMA.Warmup, set.ShortEMA.Len()},
		{"ema_long", set.LongEMA.Warmup, set.LongEMA.Len()},
		{"rsi", set.RSI.Warmup, set.RSI.Len()},
		{"stoch_rsi", set.StochRSI.Warmup, set.StochRSI.Len()},
		{"macd", set.MACD.Warmup, set.MACD.Len()},
		{"bollinger", set.Bollinger.Warmup, set.Bollinger.Len()},
		{"atr", set.ATR.Warmup, set.ATR.Len()},
		{"psar", set.PSAR.Warmup, set.PSAR.Len()},
		{"cci", set.CCI.Warmup, set.CCI.Len()},
		{"adx", set.ADX.Warmup, set.ADX.Len()},
		{"williams_r", set.WilliamsR.Warmup, set.WilliamsR.Len()},
		{"ichimoku", set.Ichimoku.Warmup, set.Ichimoku.Len()},
		{"keltner", set.Keltner.Warmup, set.Keltner.Len()},
		{"cmo", set.CMO.Warmup, set.CMO.Len()},
		{"obv", set.OBV.Warmup, set.OBV.Len()},
		{"cmf", set.CMF.Warmup, set.CMF.Len()},
		{"vwma", set.VWMA.Warmup, set.VWMA.Len()},
	}
	for _, c := range checks {
		assert.Equal(t, n-c.warmup+1, c.length, c.name)
	}

	for key, r := range set.Snapshot() {
		assert.True(t, r.Valid, key)
	}
}

func TestComputeShortSeriesLeavesLongIndicatorsEmpty(t *testing.T) {
	set := Compute(risingSeries(model.DefaultWindow, false))

	assert.Empty(t, set.LongSMA.Points)
	assert.Empty(t, set.LongEMA.Points)
	assert.NotEmpty(t, set.ShortSMA.Points)
	assert.NotEmpty(t, set.MACD.Points)

	// No volume, no volume indicators.
	assert.Empty(t, set.OBV.Points)
	assert.Empty(t, set.CMF.Points)
	assert.Empty(t, set.VWMA.Points)

	snap := set.Snapshot()
	assert.False(t, snap[model.KeySMALong].Valid)
	assert.Equal(t, 0.0, snap[model.KeySMALong].Value)
	assert.True(t, snap[model.KeySMAShort].Valid)
}

func TestComputeEmptySeries(t *testing.T) {
	set := Compute(model.NewPriceSeries("TEST", "1h", nil, 0))
	for key, r := range set.Snapshot() {
		assert.False(t, r.Valid, key)
	}
}
