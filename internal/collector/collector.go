package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"SignalSentinel/internal/model"
)

// Archive stores fetched candles for later offline runs.
type Archive interface {
	RecordCandles(symbol, interval string, candles []model.Candle) error
}

// Collector turns a fetcher into a bounded price series.
type Collector struct {
	Fetcher  Fetcher
	Archive  Archive // optional
	Symbol   string
	Interval string
	Window   int
	Logger   zerolog.Logger
}

// NewCollector creates a new Collector. A non-positive window falls back to
// model.DefaultWindow.
func NewCollector(fetcher Fetcher, archive Archive, symbol, interval string, window int, logger zerolog.Logger) *Collector {
	if window <= 0 {
		window = model.DefaultWindow
	}
	return &Collector{
		Fetcher:  fetcher,
		Archive:  archive,
		Symbol:   symbol,
		Interval: interval,
		Window:   window,
		Logger:   logger.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
}

// Collect fetches the newest window of candles. Any fetch failure yields an
// empty series and an error matching ErrNoData; the caller is expected to
// skip the run.
func (c *Collector) Collect(ctx context.Context) (model.PriceSeries, error) {
	candles, err := c.Fetcher.FetchCandles(ctx, c.Symbol, c.Interval, c.Window)
	if err != nil {
		c.Logger.Warn().Err(err).Str("symbol", c.Symbol).Msg("fetch failed, treating as no data")
		return model.NewPriceSeries(c.Symbol, c.Interval, nil, c.Window),
			fmt.Errorf("fetch %s from %s: %w: %w", c.Symbol, c.Fetcher.Name(), ErrNoData, err)
	}
	series := model.NewPriceSeries(c.Symbol, c.Interval, candles, c.Window)
	if series.Empty() {
		return series, fmt.Errorf("fetch %s from %s: %w", c.Symbol, c.Fetcher.Name(), ErrNoData)
	}

	c.Logger.Debug().Int("candles", series.Len()).Float64("price", series.LatestPrice()).Msg("candles fetched")
	c.archive(series)
	return series, nil
}

func (c *Collector) archive(series model.PriceSeries) {
	if c.Archive == nil {
		return
	}
	// Re-archiving candles read from the archive itself is pointless.
	if src, ok := c.Fetcher.(Archive); ok && src == c.Archive {
		return
	}
	if err := c.Archive.RecordCandles(c.Symbol, c.Interval, series.Candles()); err != nil {
		c.Logger.Error().Err(err).Msg("archive candles")
	}
}
