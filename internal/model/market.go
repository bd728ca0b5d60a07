package model

import "time"

// DefaultWindow is the number of candles evaluated per run.
const DefaultWindow = 100

// Candle represents a single closed bar at a fixed interval.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Seq    int // position inside the window, oldest = 0
}

// PriceSeries is an immutable window of candles, oldest first.
type PriceSeries struct {
	Symbol    string
	Interval  string
	FetchedAt time.Time
	candles   []Candle
}

// NewPriceSeries copies the newest max candles into a series and renumbers
// their sequence indexes. A max of zero or less keeps every candle.
func NewPriceSeries(symbol, interval string, candles []Candle, max int) PriceSeries {
	if max > 0 && len(candles) > max {
		candles = candles[len(candles)-max:]
	}
	owned := make([]Candle, len(candles))
	copy(owned, candles)
	for i := range owned {
		owned[i].Seq = i
	}
	return PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		FetchedAt: time.Now(),
		candles:   owned,
	}
}

func (s PriceSeries) Len() int    { return len(s.candles) }
func (s PriceSeries) Empty() bool { return len(s.candles) == 0 }

// Candles returns a copy of the window.
func (s PriceSeries) Candles() []Candle {
	out := make([]Candle, len(s.candles))
	copy(out, s.candles)
	return out
}

// LatestPrice returns the close of the newest candle, or 0 for an empty series.
func (s PriceSeries) LatestPrice() float64 {
	if len(s.candles) == 0 {
		return 0
	}
	return s.candles[len(s.candles)-1].Close
}

// HasVolume reports whether any candle carries volume.
func (s PriceSeries) HasVolume() bool {
	for _, c := range s.candles {
		if c.Volume > 0 {
			return true
		}
	}
	return false
}

func (s PriceSeries) Closes() []float64 {
	return s.extract(func(c Candle) float64 { return c.Close })
}

func (s PriceSeries) Highs() []float64 {
	return s.extract(func(c Candle) float64 { return c.High })
}

func (s PriceSeries) Lows() []float64 {
	return s.extract(func(c Candle) float64 { return c.Low })
}

func (s PriceSeries) Volumes() []float64 {
	return s.extract(func(c Candle) float64 { return c.Volume })
}

func (s PriceSeries) extract(field func(Candle) float64) []float64 {
	out := make([]float64, len(s.candles))
	for i, c := range s.candles {
		out[i] = field(c)
	}
	return out
}
