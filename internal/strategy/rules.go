package strategy

import "SignalSentinel/internal/model"

// Thresholds used by the cascade.
const (
	rsiOversold      = 30
	rsiOverbought    = 70
	stochOversold    = 20
	stochOverbought  = 80
	volatilityRatio  = 0.01
	cciOversold      = -100
	cciOverbought    = 100
	williamsOversold = -80
	// Loose on purpose: anything above -20 reads overbought, so this rule
	// fires on most runs.
	williamsOverbought = -20
	strongTrendADX     = 25
)

// Rule sets the current category to Then when When holds.
type Rule struct {
	Name string
	When func(Readings) bool
	Then model.Category
}

// cascade is evaluated top to bottom; a matching rule overwrites whatever
// earlier rules decided, so position is priority.
var cascade = []Rule{
	{"sma_cross_up", func(r Readings) bool { return r.ShortSMA.Greater(r.LongSMA) }, model.Buy},
	{"sma_cross_down", func(r Readings) bool { return r.ShortSMA.Less(r.LongSMA) }, model.Sell},

	{"ema_cross_up", func(r Readings) bool { return r.ShortEMA.Greater(r.LongEMA) }, model.Buy},
	{"ema_cross_down", func(r Readings) bool { return r.ShortEMA.Less(r.LongEMA) }, model.Sell},

	{"rsi_oversold", func(r Readings) bool { return r.RSI.Below(rsiOversold) }, model.Buy},
	{"rsi_overbought", func(r Readings) bool { return r.RSI.Above(rsiOverbought) }, model.Sell},

	{"stoch_rsi_oversold", func(r Readings) bool {
		return r.StochK.Below(stochOversold) && r.StochD.Below(stochOversold)
	}, model.Buy},
	{"stoch_rsi_overbought", func(r Readings) bool {
		return r.StochK.Above(stochOverbought) && r.StochD.Above(stochOverbought)
	}, model.Sell},

	{"macd_bullish", func(r Readings) bool { return r.MACDLine.Greater(r.MACDSignal) }, model.Buy},
	{"macd_bearish", func(r Readings) bool { return r.MACDLine.Less(r.MACDSignal) }, model.Sell},

	// A zero width band touches the price on both sides, so a flat market
	// would fire both rules. Skipping it keeps a flat series at HOLD.
	{"bollinger_lower", func(r Readings) bool {
		return r.BollUpper.Greater(r.BollLower) && r.Price.LessEq(r.BollLower)
	}, model.Buy},
	{"bollinger_upper", func(r Readings) bool {
		return r.BollUpper.Greater(r.BollLower) && r.Price.GreaterEq(r.BollUpper)
	}, model.Sell},

	// Resets to HOLD, but only for the rules above it.
	{"atr_volatility", func(r Readings) bool {
		return r.Price.Valid && r.ATR.Above(r.Price.Value*volatilityRatio)
	}, model.Hold},

	{"psar_below_price", func(r Readings) bool { return r.Price.Greater(r.PSAR) }, model.Buy},
	{"psar_above_price", func(r Readings) bool { return r.Price.Less(r.PSAR) }, model.Sell},

	{"cci_oversold", func(r Readings) bool { return r.CCI.Below(cciOversold) }, model.Buy},
	{"cci_overbought", func(r Readings) bool { return r.CCI.Above(cciOverbought) }, model.Sell},

	{"williams_r_oversold", func(r Readings) bool { return r.WilliamsR.Below(williamsOversold) }, model.Buy},
	{"williams_r_overbought", func(r Readings) bool { return r.WilliamsR.Above(williamsOverbought) }, model.Sell},
}

// Cascade returns a copy of the ordered rule list.
func Cascade() []Rule {
	out := make([]Rule, len(cascade))
	copy(out, cascade)
	return out
}

// Fold evaluates rules left to right starting from HOLD and returns the last
// matching category along with the names of every rule that matched.
func Fold(rules []Rule, r Readings) (model.Category, []string) {
	category := model.Hold
	var fired []string
	for _, rule := range rules {
		if rule.When(r) {
			category = rule.Then
			fired = append(fired, rule.Name)
		}
	}
	return category, fired
}

// qualify annotates a non-HOLD decision taken while ADX shows a strong trend.
func qualify(category model.Category, r Readings) model.Qualifier {
	if category != model.Hold && r.ADX.Above(strongTrendADX) {
		return model.StrongTrend
	}
	return model.NoQualifier
}
