package recorder

import "SignalSentinel/internal/model"

// Recorder persists fetched candles for offline analysis and replays.
// Signals themselves are never stored.
type Recorder interface {
	RecordCandles(symbol, interval string, candles []model.Candle) error
	Close() error
}
