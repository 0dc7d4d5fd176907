package collector

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"MarketBreadth/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const historicalStocksPath = "/historical/stocks/{ticker}"

// Data912Fetcher implements Fetcher against a data912-style REST API.
type Data912Fetcher struct {
	client *resty.Client
}

// NewData912Fetcher creates a fetcher for baseURL with the given per-request timeout.
func NewData912Fetcher(baseURL string, timeout time.Duration, logger zerolog.Logger) *Data912Fetcher {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	client.SetLogger(restyLogger{logger})
	return &Data912Fetcher{client: client}
}

func (f *Data912Fetcher) Name() string { return "data912" }

// FetchHistory performs one request for the ticker's history.
func (f *Data912Fetcher) FetchHistory(ctx context.Context, ticker string) ([]model.RawBar, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		Get(historicalStocksPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if !resp.IsSuccess() {
		body := resp.String()
		if len(body) > 200 {
			body = body[:200]
		}
		return nil, fmt.Errorf("fetch %s: %w", ticker, &StatusError{StatusCode: resp.StatusCode(), Body: body})
	}
	bars, err := ParseBars(resp.Body(), ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	return bars, nil
}

var dateLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// field returns the abbreviated key if present, else the explicit one.
func field(row gjson.Result, short, long string) gjson.Result {
	if v := row.Get(short); v.Exists() {
		return v
	}
	return row.Get(long)
}

// ParseBars normalizes a provider payload (an array of bars keyed
// o,h,l,c,v,dr,date) into date-ascending bars tagged with ticker.
// An empty array yields nil bars and no error.
func ParseBars(body []byte, ticker string) ([]model.RawBar, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedPayload)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedPayload)
	}
	rows := root.Array()
	if len(rows) == 0 {
		return nil, nil
	}

	bars := make([]model.RawBar, 0, len(rows))
	for idx, row := range rows {
		if !row.IsObject() {
			return nil, fmt.Errorf("%w: row %d is not an object", ErrMalformedPayload, idx)
		}
		dt, err := parseDate(row.Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedPayload, idx, err)
		}
		closeVal := field(row, "c", "close")
		if closeVal.Type != gjson.Number {
			return nil, fmt.Errorf("%w: row %d has no close", ErrMalformedPayload, idx)
		}

		bar := model.RawBar{
			Ticker: ticker,
			Date:   dt,
			Open:   field(row, "o", "open").Float(),
			High:   field(row, "h", "high").Float(),
			Low:    field(row, "l", "low").Float(),
			Close:  closeVal.Float(),
			Volume: field(row, "v", "volume").Float(),
		}
		if dr := field(row, "dr", "daily_return"); dr.Type == gjson.Number {
			v := dr.Float()
			bar.DailyReturn = &v
		}
		if name, ok := finiteBar(bar); !ok {
			return nil, fmt.Errorf("%w: row %d has a non-finite %s", ErrMalformedPayload, idx, name)
		}
		bars = append(bars, bar)
	}

	return model.SortBars(bars), nil
}

// finiteBar reports the first field of b that is NaN or infinite.
func finiteBar(b model.RawBar) (string, bool) {
	names := []string{"open", "high", "low", "close", "volume"}
	values := []float64{b.Open, b.High, b.Low, b.Close, b.Volume}
	if b.DailyReturn != nil {
		names = append(names, "daily_return")
		values = append(values, *b.DailyReturn)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return names[i], false
		}
	}
	return "", true
}

// restyLogger routes resty's internal messages to zerolog.
type restyLogger struct {
	zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.Debug().Msgf(format, v...) }
