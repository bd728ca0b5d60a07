package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"SignalSentinel/internal/model"
)

const binanceBaseURL = "https://api.binance.com"

// binanceMaxLimit is the largest page the klines endpoint serves.
const binanceMaxLimit = 1000

var _ Fetcher = (*BinanceFetcher)(nil)

// BinanceFetcher implements Fetcher using the public Binance klines endpoint.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a new fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = binanceBaseURL
	}
	return &BinanceFetcher{BaseURL: baseURL, Client: newHTTPClient(proxyURL)}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	if limit <= 0 || limit > binanceMaxLimit {
		limit = binanceMaxLimit
	}
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("interval", interval)
	params.Add("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/api/v3/klines?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching klines for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("binance: invalid json response")
	}
	return ParseKlines(gjson.ParseBytes(body).Array())
}

// ParseKlines decodes Binance kline rows:
// [openTime, open, high, low, close, volume, closeTime, ...].
func ParseKlines(rows []gjson.Result) ([]model.Candle, error) {
	candles := make([]model.Candle, 0, len(rows))
	for idx, row := range rows {
		fields := row.Array()
		if len(fields) < 6 {
			return nil, fmt.Errorf("kline %d: expected at least 6 fields, got %d", idx, len(fields))
		}
		candles = append(candles, model.Candle{
			Time:   time.UnixMilli(fields[0].Int()).UTC(),
			Open:   fields[1].Float(),
			High:   fields[2].Float(),
			Low:    fields[3].Float(),
			Close:  fields[4].Float(),
			Volume: fields[5].Float(),
		})
	}
	return sortCandles(candles, 0), nil
}
