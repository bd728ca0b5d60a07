package collector

import (
	"context"
	"time"

	"SignalSentinel/internal/model"
)

var _ Fetcher = (*MockFetcher)(nil)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Candles []model.Candle
	Err     error
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ context.Context, _, interval string, limit int) ([]model.Candle, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		out := make([]model.Candle, len(m.Candles))
		copy(out, m.Candles)
		return sortCandles(out, limit), nil
	}
	step, err := IntervalDuration(interval)
	if err != nil {
		step = time.Hour
	}
	return generateMockCandles(m.Price, limit, step), nil
}

// generateMockCandles produces a gentle uptrend centred on basePrice.
func generateMockCandles(basePrice float64, count int, step time.Duration) []model.Candle {
	now := time.Now().Truncate(step)
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Time:   now.Add(-time.Duration(count-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return candles
}
