package strategy

import (
	"time"

	"SignalSentinel/internal/model"
)

// Readings are the latest indicator values consulted by the cascade.
type Readings struct {
	Price                model.Reading
	ShortSMA, LongSMA    model.Reading
	ShortEMA, LongEMA    model.Reading
	RSI                  model.Reading
	StochK, StochD       model.Reading
	MACDLine, MACDSignal model.Reading
	BollLower, BollUpper model.Reading
	ATR                  model.Reading
	PSAR                 model.Reading
	CCI                  model.Reading
	ADX                  model.Reading
	WilliamsR            model.Reading
}

// ReadingsFrom picks the cascade inputs out of an indicator snapshot.
func ReadingsFrom(snapshot map[string]model.Reading, series model.PriceSeries) Readings {
	price := model.Absent
	if !series.Empty() {
		price = model.Present(series.LatestPrice())
	}
	return Readings{
		Price:      price,
		ShortSMA:   snapshot[model.KeySMAShort],
		LongSMA:    snapshot[model.KeySMALong],
		ShortEMA:   snapshot[model.KeyEMAShort],
		LongEMA:    snapshot[model.KeyEMALong],
		RSI:        snapshot[model.KeyRSI],
		StochK:     snapshot[model.KeyStochK],
		StochD:     snapshot[model.KeyStochD],
		MACDLine:   snapshot[model.KeyMACDLine],
		MACDSignal: snapshot[model.KeyMACDSignal],
		BollLower:  snapshot[model.KeyBBLower],
		BollUpper:  snapshot[model.KeyBBUpper],
		ATR:        snapshot[model.KeyATR],
		PSAR:       snapshot[model.KeyPSAR],
		CCI:        snapshot[model.KeyCCI],
		ADX:        snapshot[model.KeyADX],
		WilliamsR:  snapshot[model.KeyWilliamsR],
	}
}

// Evaluate reduces an indicator set to a single trading decision.
func Evaluate(set *model.IndicatorSet, series model.PriceSeries) *model.SignalResult {
	snapshot := set.Snapshot()
	readings := ReadingsFrom(snapshot, series)

	category, fired := Fold(cascade, readings)

	return &model.SignalResult{
		Symbol:      series.Symbol,
		Category:    category,
		Qualifier:   qualify(category, readings),
		LatestPrice: series.LatestPrice(),
		Snapshot:    snapshot,
		Fired:       fired,
		EvaluatedAt: time.Now(),
	}
}
