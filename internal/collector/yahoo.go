package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"SignalSentinel/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

var _ Fetcher = (*YahooFetcher)(nil)

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"BTCUSDT": "BTC-USD",
			"ETHUSDT": "ETH-USD",
			"SPX500":  "^GSPC",
			"SPX":     "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooInterval maps exchange intervals onto the ones the chart API accepts.
var yahooInterval = map[string]string{
	"1m": "1m", "5m": "5m", "15m": "15m", "30m": "30m",
	"1h": "60m", "1d": "1d", "1w": "1wk", "1M": "1mo",
}

// yahooRanges are the chart API ranges, shortest first.
var yahooRanges = []struct {
	name string
	span time.Duration
}{
	{"1d", 24 * time.Hour},
	{"5d", 5 * 24 * time.Hour},
	{"1mo", 30 * 24 * time.Hour},
	{"3mo", 90 * 24 * time.Hour},
	{"6mo", 180 * 24 * time.Hour},
	{"1y", 365 * 24 * time.Hour},
	{"2y", 730 * 24 * time.Hour},
	{"5y", 5 * 365 * 24 * time.Hour},
	{"10y", 10 * 365 * 24 * time.Hour},
}

// chartRange picks the smallest range covering limit bars. Markets that close
// overnight or at weekends need more calendar time than bars, so the window
// is padded.
func chartRange(interval string, limit int) (string, error) {
	step, err := IntervalDuration(interval)
	if err != nil {
		return "", err
	}
	want := step * time.Duration(limit) * 2
	for _, r := range yahooRanges {
		if r.span >= want {
			return r.name, nil
		}
	}
	return "max", nil
}

func (f *YahooFetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	yi, ok := yahooInterval[interval]
	if !ok {
		return nil, fmt.Errorf("yahoo: unsupported interval %q", interval)
	}
	rng, err := chartRange(interval, limit)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), yi, rng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo: invalid json response")
	}
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", desc.String())
	}
	return parseChart(gjson.GetBytes(body, "chart.result.0"), limit), nil
}

// parseChart decodes one chart result. Bars whose prices are all null
// (holidays, halted sessions) are skipped.
func parseChart(result gjson.Result, limit int) []model.Candle {
	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	at := func(values []gjson.Result, i int) float64 {
		if i >= len(values) {
			return 0
		}
		return values[i].Float()
	}

	candles := make([]model.Candle, 0, len(timestamps))
	for i, ts := range timestamps {
		o, h, l, c := at(opens, i), at(highs, i), at(lows, i), at(closes, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		candles = append(candles, model.Candle{
			Time:   time.Unix(ts.Int(), 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: at(volumes, i),
		})
	}
	return sortCandles(candles, limit)
}
