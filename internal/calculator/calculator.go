package calculator

import "SignalSentinel/internal/model"

// Params holds every indicator parameterization.
type Params struct {
	ShortMA, LongMA int

	RSIPeriod int

	StochRSIPeriod, StochPeriod, StochK, StochD int

	MACDFast, MACDSlow, MACDSignal int

	BollingerPeriod int
	BollingerStdDev float64

	ATRPeriod int

	SARStep, SARMax float64

	CCIPeriod       int
	ADXPeriod       int
	WilliamsRPeriod int

	IchimokuConversion, IchimokuBase, IchimokuSpanB int

	KeltnerEMA, KeltnerATR int
	KeltnerMultiplier      float64

	CMOPeriod  int
	CMFPeriod  int
	VWMAPeriod int
}

// DefaultParams is the fixed indicator battery evaluated on every run.
var DefaultParams = Params{
	ShortMA: 50, LongMA: 200,
	RSIPeriod:      14,
	StochRSIPeriod: 14, StochPeriod: 14, StochK: 3, StochD: 3,
	MACDFast: 12, MACDSlow: 26, MACDSignal: 9,
	BollingerPeriod: 20, BollingerStdDev: 2,
	ATRPeriod: 14,
	SARStep:   0.02, SARMax: 0.2,
	CCIPeriod:          14,
	ADXPeriod:          14,
	WilliamsRPeriod:    14,
	IchimokuConversion: 9, IchimokuBase: 26, IchimokuSpanB: 52,
	KeltnerEMA: 20, KeltnerATR: 10, KeltnerMultiplier: 2,
	CMOPeriod:  14,
	CMFPeriod:  20,
	VWMAPeriod: 20,
}

// Compute derives the full indicator set from a price series with the
// default parameters.
func Compute(series model.PriceSeries) *model.IndicatorSet {
	return DefaultParams.Compute(series)
}

// Compute derives the full indicator set from a price series. Indicators
// whose warm-up exceeds the series length come back empty. Volume-based
// indicators are only computed when the series carries volume.
func (p Params) Compute(series model.PriceSeries) *model.IndicatorSet {
	closes, highs, lows := series.Closes(), series.Highs(), series.Lows()

	set := &model.IndicatorSet{
		ShortSMA:  named("sma_short", p.ShortMA, SMA(closes, p.ShortMA)),
		LongSMA:   named("sma_long", p.LongMA, SMA(closes, p.LongMA)),
		ShortEMA:  named("ema_short", p.ShortMA, EMA(closes, p.ShortMA)),
		LongEMA:   named("ema_long", p.LongMA, EMA(closes, p.LongMA)),
		RSI:       named("rsi", p.RSIPeriod+1, RSI(closes, p.RSIPeriod)),
		StochRSI:  named("stoch_rsi", p.stochWarmup(), StochRSI(closes, p.StochRSIPeriod, p.StochPeriod, p.StochK, p.StochD)),
		MACD:      named("macd", p.MACDSlow+p.MACDSignal-1, MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)),
		Bollinger: named("bollinger", p.BollingerPeriod, BollingerBands(closes, p.BollingerPeriod, p.BollingerStdDev)),
		ATR:       named("atr", p.ATRPeriod+1, ATR(highs, lows, closes, p.ATRPeriod)),
		PSAR:      named("psar", 1, ParabolicSAR(highs, lows, p.SARStep, p.SARMax)),
		CCI:       named("cci", p.CCIPeriod, CCI(highs, lows, closes, p.CCIPeriod)),
		ADX:       named("adx", 2*p.ADXPeriod, ADX(highs, lows, closes, p.ADXPeriod)),
		WilliamsR: named("williams_r", p.WilliamsRPeriod, WilliamsR(highs, lows, closes, p.WilliamsRPeriod)),
		Ichimoku: named("ichimoku", max(p.IchimokuConversion, p.IchimokuBase, p.IchimokuSpanB),
			Ichimoku(highs, lows, p.IchimokuConversion, p.IchimokuBase, p.IchimokuSpanB)),
		Keltner: named("keltner", max(p.KeltnerEMA, p.KeltnerATR+1),
			Keltner(highs, lows, closes, p.KeltnerEMA, p.KeltnerATR, p.KeltnerMultiplier)),
		CMO: named("cmo", p.CMOPeriod+1, CMO(closes, p.CMOPeriod)),
	}

	if series.HasVolume() {
		volumes := series.Volumes()
		set.OBV = named("obv", 1, OBV(closes, volumes))
		set.CMF = named("cmf", p.CMFPeriod, CMF(highs, lows, closes, volumes, p.CMFPeriod))
		set.VWMA = named("vwma", p.VWMAPeriod, VWMA(closes, volumes, p.VWMAPeriod))
	} else {
		set.OBV = named[float64]("obv", 1, nil)
		set.CMF = named[float64]("cmf", p.CMFPeriod, nil)
		set.VWMA = named[float64]("vwma", p.VWMAPeriod, nil)
	}
	return set
}

// stochWarmup is the number of closes needed for the first %D value.
func (p Params) stochWarmup() int {
	return p.StochRSIPeriod + 1 + (p.StochPeriod - 1) + (p.StochK - 1) + (p.StochD - 1)
}

func named[T any](name string, warmup int, points []T) model.Series[T] {
	return model.Series[T]{Name: name, Warmup: warmup, Points: points}
}
