package model

import (
	"sort"
	"strconv"
)

// Reading is the latest value of one indicator component. Valid is false
// when the indicator had not warmed up; an invalid reading never satisfies
// a comparison.
type Reading struct {
	Value float64
	Valid bool
}

// Present wraps a computed value.
func Present(v float64) Reading { return Reading{Value: v, Valid: true} }

// Absent is the reading of an indicator without a latest value.
var Absent = Reading{}

func (r Reading) Less(o Reading) bool      { return r.Valid && o.Valid && r.Value < o.Value }
func (r Reading) Greater(o Reading) bool   { return r.Valid && o.Valid && r.Value > o.Value }
func (r Reading) LessEq(o Reading) bool    { return r.Valid && o.Valid && r.Value <= o.Value }
func (r Reading) GreaterEq(o Reading) bool { return r.Valid && o.Valid && r.Value >= o.Value }

// Below and Above compare against a constant threshold.
func (r Reading) Below(threshold float64) bool { return r.Valid && r.Value < threshold }
func (r Reading) Above(threshold float64) bool { return r.Valid && r.Value > threshold }

func (r Reading) String() string {
	if !r.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', 4, 64)
}

// Series is an indicator output aligned to the tail of the price series:
// Points[0] corresponds to price index Warmup-1.
type Series[T any] struct {
	Name   string
	Warmup int
	Points []T
}

func (s Series[T]) Len() int { return len(s.Points) }

// Latest returns the last point, or false when the series is empty.
func (s Series[T]) Latest() (T, bool) {
	var zero T
	if len(s.Points) == 0 {
		return zero, false
	}
	return s.Points[len(s.Points)-1], true
}

// MACDPoint is one MACD observation.
type MACDPoint struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// BandPoint is one envelope observation (Bollinger, Keltner).
type BandPoint struct {
	Lower  float64
	Middle float64
	Upper  float64
}

// StochRSIPoint is one stochastic RSI observation.
type StochRSIPoint struct {
	StochRSI float64
	K        float64
	D        float64
}

// ADXPoint is one directional movement observation.
type ADXPoint struct {
	ADX float64
	PDI float64
	MDI float64
}

// IchimokuPoint holds the undisplaced Ichimoku lines.
type IchimokuPoint struct {
	Conversion float64
	Base       float64
	SpanA      float64
	SpanB      float64
}

// IndicatorSet holds every indicator computed from one price series.
// It is built once per run and never modified afterwards.
type IndicatorSet struct {
	ShortSMA  Series[float64]
	LongSMA   Series[float64]
	ShortEMA  Series[float64]
	LongEMA   Series[float64]
	RSI       Series[float64]
	StochRSI  Series[StochRSIPoint]
	MACD      Series[MACDPoint]
	Bollinger Series[BandPoint]
	ATR       Series[float64]
	PSAR      Series[float64]
	CCI       Series[float64]
	ADX       Series[ADXPoint]
	WilliamsR Series[float64]

	Ichimoku Series[IchimokuPoint]
	Keltner  Series[BandPoint]
	CMO      Series[float64]
	OBV      Series[float64]
	CMF      Series[float64]
	VWMA     Series[float64]
}

// Snapshot keys.
const (
	KeySMAShort       = "sma_short"
	KeySMALong        = "sma_long"
	KeyEMAShort       = "ema_short"
	KeyEMALong        = "ema_long"
	KeyRSI            = "rsi"
	KeyStochRSI       = "stoch_rsi"
	KeyStochK         = "stoch_rsi_k"
	KeyStochD         = "stoch_rsi_d"
	KeyMACDLine       = "macd_line"
	KeyMACDSignal     = "macd_signal"
	KeyMACDHistogram  = "macd_histogram"
	KeyBBLower        = "bb_lower"
	KeyBBMiddle       = "bb_middle"
	KeyBBUpper        = "bb_upper"
	KeyATR            = "atr"
	KeyPSAR           = "psar"
	KeyCCI            = "cci"
	KeyADX            = "adx"
	KeyPDI            = "adx_pdi"
	KeyMDI            = "adx_mdi"
	KeyWilliamsR      = "williams_r"
	KeyIchiConversion = "ichimoku_conversion"
	KeyIchiBase       = "ichimoku_base"
	KeyIchiSpanA      = "ichimoku_span_a"
	KeyIchiSpanB      = "ichimoku_span_b"
	KeyKeltnerLower   = "keltner_lower"
	KeyKeltnerMiddle  = "keltner_middle"
	KeyKeltnerUpper   = "keltner_upper"
	KeyCMO            = "cmo"
	KeyOBV            = "obv"
	KeyCMF            = "cmf"
	KeyVWMA           = "vwma"
)

func latest[T any](s Series[T], pick func(T) float64) Reading {
	p, ok := s.Latest()
	if !ok {
		return Absent
	}
	return Present(pick(p))
}

func scalar(v float64) float64 { return v }

// Snapshot flattens the latest value of every indicator component.
func (set *IndicatorSet) Snapshot() map[string]Reading {
	return map[string]Reading{
		KeySMAShort:       latest(set.ShortSMA, scalar),
		KeySMALong:        latest(set.LongSMA, scalar),
		KeyEMAShort:       latest(set.ShortEMA, scalar),
		KeyEMALong:        latest(set.LongEMA, scalar),
		KeyRSI:            latest(set.RSI, scalar),
		KeyStochRSI:       latest(set.StochRSI, func(p StochRSIPoint) float64 { return p.StochRSI }),
		KeyStochK:         latest(set.StochRSI, func(p StochRSIPoint) float64 { return p.K }),
		KeyStochD:         latest(set.StochRSI, func(p StochRSIPoint) float64 { return p.D }),
		KeyMACDLine:       latest(set.MACD, func(p MACDPoint) float64 { return p.Line }),
		KeyMACDSignal:     latest(set.MACD, func(p MACDPoint) float64 { return p.Signal }),
		KeyMACDHistogram:  latest(set.MACD, func(p MACDPoint) float64 { return p.Histogram }),
		KeyBBLower:        latest(set.Bollinger, func(p BandPoint) float64 { return p.Lower }),
		KeyBBMiddle:       latest(set.Bollinger, func(p BandPoint) float64 { return p.Middle }),
		KeyBBUpper:        latest(set.Bollinger, func(p BandPoint) float64 { return p.Upper }),
		KeyATR:            latest(set.ATR, scalar),
		KeyPSAR:           latest(set.PSAR, scalar),
		KeyCCI:            latest(set.CCI, scalar),
		KeyADX:            latest(set.ADX, func(p ADXPoint) float64 { return p.ADX }),
		KeyPDI:            latest(set.ADX, func(p ADXPoint) float64 { return p.PDI }),
		KeyMDI:            latest(set.ADX, func(p ADXPoint) float64 { return p.MDI }),
		KeyWilliamsR:      latest(set.WilliamsR, scalar),
		KeyIchiConversion: latest(set.Ichimoku, func(p IchimokuPoint) float64 { return p.Conversion }),
		KeyIchiBase:       latest(set.Ichimoku, func(p IchimokuPoint) float64 { return p.Base }),
		KeyIchiSpanA:      latest(set.Ichimoku, func(p IchimokuPoint) float64 { return p.SpanA }),
		KeyIchiSpanB:      latest(set.Ichimoku, func(p IchimokuPoint) float64 { return p.SpanB }),
		KeyKeltnerLower:   latest(set.Keltner, func(p BandPoint) float64 { return p.Lower }),
		KeyKeltnerMiddle:  latest(set.Keltner, func(p BandPoint) float64 { return p.Middle }),
		KeyKeltnerUpper:   latest(set.Keltner, func(p BandPoint) float64 { return p.Upper }),
		KeyCMO:            latest(set.CMO, scalar),
		KeyOBV:            latest(set.OBV, scalar),
		KeyCMF:            latest(set.CMF, scalar),
		KeyVWMA:           latest(set.VWMA, scalar),
	}
}

// SortedKeys returns the snapshot keys in a stable order for display.
func SortedKeys(snapshot map[string]Reading) []string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
