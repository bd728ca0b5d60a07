package strategy

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

func makeSeries(n int, price func(i int) (high, low, close float64)) model.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, n)
	for i := range candles {
		h, l, c := price(i)
		candles[i] = model.Candle{Time: base.Add(time.Duration(i) * time.Hour), Open: c, High: h, Low: l, Close: c}
	}
	return model.NewPriceSeries("BTCUSDT", "1h", candles, 0)
}

func flatSeries(n int) model.PriceSeries {
	return makeSeries(n, func(int) (float64, float64, float64) { return 100, 100, 100 })
}

func risingSeries(n int) model.PriceSeries {
	return makeSeries(n, func(i int) (float64, float64, float64) {
		c := 100 + float64(i)
		return c + 1, c - 1, c
	})
}

func categoryOf(t *testing.T, name string) model.Category {
	t.Helper()
	for _, r := range Cascade() {
		if r.Name == name {
			return r.Then
		}
	}
	t.Fatalf("unknown rule %q", name)
	return ""
}

func TestCascadeOrder(t *testing.T) {
	want := []string{
		"sma_cross_up", "sma_cross_down",
		"ema_cross_up", "ema_cross_down",
		"rsi_oversold", "rsi_overbought",
		"stoch_rsi_oversold", "stoch_rsi_overbought",
		"macd_bullish", "macd_bearish",
		"bollinger_lower", "bollinger_upper",
		"atr_volatility",
		"psar_below_price", "psar_above_price",
		"cci_oversold", "cci_overbought",
		"williams_r_oversold", "williams_r_overbought",
	}
	var got []string
	for _, r := range Cascade() {
		got = append(got, r.Name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cascade order mismatch (-want +got):\n%s", diff)
	}
}

func TestFold_AbsentInputsNeverMatch(t *testing.T) {
	category, fired := Fold(Cascade(), Readings{})
	assert.Equal(t, model.Hold, category)
	assert.Empty(t, fired)

	// A present side compared against an absent side is still skipped.
	r := Readings{
		Price:    model.Present(100),
		ShortSMA: model.Present(10),
		ShortEMA: model.Present(10),
		MACDLine: model.Present(1),
		ATR:      model.Absent,
	}
	category, fired = Fold(Cascade(), r)
	assert.Equal(t, model.Hold, category)
	assert.Empty(t, fired)
}

func TestFold_LaterRuleWins(t *testing.T) {
	tests := []struct {
		name     string
		readings Readings
		want     model.Category
		fired    []string
	}{
		{
			name: "bollinger upper overrides rsi oversold",
			readings: Readings{
				Price:     model.Present(110),
				RSI:       model.Present(25),
				BollLower: model.Present(90),
				BollUpper: model.Present(105),
			},
			want:  model.Sell,
			fired: []string{"rsi_oversold", "bollinger_upper"},
		},
		{
			name: "bollinger lower overrides rsi overbought",
			readings: Readings{
				Price:     model.Present(85),
				RSI:       model.Present(75),
				BollLower: model.Present(90),
				BollUpper: model.Present(105),
			},
			want:  model.Buy,
			fired: []string{"rsi_overbought", "bollinger_lower"},
		},
		{
			name: "macd bullish overrides rsi overbought after a bullish cross",
			readings: Readings{
				ShortSMA:   model.Present(120),
				LongSMA:    model.Present(100),
				RSI:        model.Present(80),
				MACDLine:   model.Present(2),
				MACDSignal: model.Present(1),
			},
			want:  model.Buy,
			fired: []string{"sma_cross_up", "rsi_overbought", "macd_bullish"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, fired := Fold(Cascade(), tt.readings)
			assert.Equal(t, tt.want, category)
			assert.Equal(t, tt.fired, fired)
		})
	}
}

func TestFold_VolatilityHoldIsPositional(t *testing.T) {
	volatile := Readings{
		Price: model.Present(100),
		RSI:   model.Present(20),
		ATR:   model.Present(1.5),
	}
	category, fired := Fold(Cascade(), volatile)
	assert.Equal(t, model.Hold, category)
	assert.Equal(t, []string{"rsi_oversold", "atr_volatility"}, fired)

	// Rules after the volatility check still override it.
	volatile.PSAR = model.Present(95)
	category, fired = Fold(Cascade(), volatile)
	assert.Equal(t, model.Buy, category)
	assert.Equal(t, []string{"rsi_oversold", "atr_volatility", "psar_below_price"}, fired)

	// ATR at exactly 1% is not volatile.
	calm := Readings{Price: model.Present(100), RSI: model.Present(20), ATR: model.Present(1)}
	category, _ = Fold(Cascade(), calm)
	assert.Equal(t, model.Buy, category)
}

func TestFold_CollapsedBollingerBandIsSkipped(t *testing.T) {
	r := Readings{
		Price:     model.Present(100),
		BollLower: model.Present(100),
		BollUpper: model.Present(100),
	}
	category, fired := Fold(Cascade(), r)
	assert.Equal(t, model.Hold, category)
	assert.Empty(t, fired)

	// Touching an open band counts.
	r.BollUpper = model.Present(104)
	category, _ = Fold(Cascade(), r)
	assert.Equal(t, model.Buy, category)
}

func TestFold_WilliamsRThresholds(t *testing.T) {
	tests := []struct {
		value float64
		want  model.Category
	}{
		{-95, model.Buy},
		{-80, model.Hold},
		{-50, model.Hold},
		{-20, model.Hold},
		{-19.9, model.Sell},
		{-5, model.Sell},
	}
	for _, tt := range tests {
		category, _ := Fold(Cascade(), Readings{WilliamsR: model.Present(tt.value)})
		assert.Equal(t, tt.want, category, "williams %%R %.1f", tt.value)
	}
}

func TestFold_StochRSINeedsBothLines(t *testing.T) {
	category, _ := Fold(Cascade(), Readings{StochK: model.Present(10), StochD: model.Present(30)})
	assert.Equal(t, model.Hold, category)

	category, _ = Fold(Cascade(), Readings{StochK: model.Present(10), StochD: model.Present(15)})
	assert.Equal(t, model.Buy, category)

	category, _ = Fold(Cascade(), Readings{StochK: model.Present(85), StochD: model.Present(90)})
	assert.Equal(t, model.Sell, category)
}

func TestQualify_StrongTrend(t *testing.T) {
	tests := []struct {
		name     string
		category model.Category
		adx      model.Reading
		want     model.Qualifier
	}{
		{"buy in strong trend", model.Buy, model.Present(30), model.StrongTrend},
		{"sell in strong trend", model.Sell, model.Present(25.01), model.StrongTrend},
		{"hold is never qualified", model.Hold, model.Present(60), model.NoQualifier},
		{"adx at threshold", model.Buy, model.Present(25), model.NoQualifier},
		{"weak trend", model.Sell, model.Present(12), model.NoQualifier},
		{"adx absent", model.Buy, model.Absent, model.NoQualifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, qualify(tt.category, Readings{ADX: tt.adx}))
		})
	}
}

func TestEvaluate_FlatSeriesHolds(t *testing.T) {
	series := flatSeries(250)
	sig := Evaluate(calculator.Compute(series), series)

	assert.Equal(t, model.Hold, sig.Category)
	assert.Equal(t, model.NoQualifier, sig.Qualifier)
	assert.Empty(t, sig.Fired)
	assert.Equal(t, "HOLD", sig.Label())
	assert.Equal(t, 100.0, sig.LatestPrice)
	assert.Equal(t, model.Present(50), sig.Snapshot[model.KeyRSI])
	assert.Equal(t, sig.Snapshot[model.KeySMAShort], sig.Snapshot[model.KeySMALong])
}

func TestEvaluate_RisingSeriesFollowsCascadeOrder(t *testing.T) {
	series := risingSeries(250)
	sig := Evaluate(calculator.Compute(series), series)

	snap := sig.Snapshot
	assert.True(t, snap[model.KeySMAShort].Greater(snap[model.KeySMALong]))
	assert.True(t, snap[model.KeyEMAShort].Greater(snap[model.KeyEMALong]))
	assert.True(t, snap[model.KeyRSI].Above(70))

	for _, name := range []string{"sma_cross_up", "ema_cross_up", "rsi_overbought", "psar_below_price"} {
		assert.Contains(t, sig.Fired, name)
	}

	// The decision is whatever the last matching rule said, not a vote.
	require.NotEmpty(t, sig.Fired)
	assert.Equal(t, categoryOf(t, sig.Fired[len(sig.Fired)-1]), sig.Category)
	assert.Equal(t, model.Sell, sig.Category)
	assert.Equal(t, model.StrongTrend, sig.Qualifier)
	assert.Equal(t, "SELL (Strong Trend)", sig.Label())
	assert.Equal(t, 349.0, sig.LatestPrice)
	assert.Equal(t, "BTCUSDT", sig.Symbol)
}

func TestEvaluate_DefaultWindowSkipsLongAverages(t *testing.T) {
	series := risingSeries(model.DefaultWindow)
	sig := Evaluate(calculator.Compute(series), series)

	assert.False(t, sig.Snapshot[model.KeySMALong].Valid)
	assert.False(t, sig.Snapshot[model.KeyEMALong].Valid)
	assert.NotContains(t, sig.Fired, "sma_cross_up")
	assert.NotContains(t, sig.Fired, "sma_cross_down")
	assert.NotContains(t, sig.Fired, "ema_cross_up")
	assert.NotContains(t, sig.Fired, "ema_cross_down")
}

func TestEvaluate_EmptySeries(t *testing.T) {
	series := model.NewPriceSeries("BTCUSDT", "1h", nil, 0)
	sig := Evaluate(calculator.Compute(series), series)
	assert.Equal(t, model.Hold, sig.Category)
	assert.Empty(t, sig.Fired)
}
