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

var _ Fetcher = (*RESTFetcher)(nil)

// RESTFetcher implements Fetcher against a generic bars endpoint:
//
//	GET {BaseURL}/api/v1/bars?symbol=..&interval=..&limit=..
//
// answering with a JSON array of {timestamp, open, high, low, close, volume}
// objects, timestamp in unix seconds.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

func (f *RESTFetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("interval", interval)
	params.Add("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/api/v1/bars?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bars: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	data := gjson.ParseBytes(body)
	if !data.IsArray() {
		return nil, fmt.Errorf("decode bars: expected a json array")
	}

	bars := data.Array()
	candles := make([]model.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, model.Candle{
			Time:   time.Unix(b.Get("timestamp").Int(), 0).UTC(),
			Open:   b.Get("open").Float(),
			High:   b.Get("high").Float(),
			Low:    b.Get("low").Float(),
			Close:  b.Get("close").Float(),
			Volume: b.Get("volume").Float(),
		})
	}
	return sortCandles(candles, limit), nil
}
