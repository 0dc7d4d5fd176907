package collector

import (
	"context"
	"hash/fnv"
	"time"

	"MarketBreadth/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Tickers listed in Series return those bars; tickers in Errs fail with that
// error; any other ticker gets Days generated bars, or no data when Days is 0.
type MockFetcher struct {
	Series map[string][]model.RawBar
	Errs   map[string]error
	Days   int
	End    time.Time

	Calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, ticker string) ([]model.RawBar, error) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[ticker]++

	if err, ok := m.Errs[ticker]; ok {
		return nil, err
	}
	if bars, ok := m.Series[ticker]; ok {
		return bars, nil
	}
	if m.Days == 0 {
		return nil, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return generateMockBars(ticker, m.Days, end), nil
}

// generateMockBars builds a deterministic series per ticker so repeated dev
// runs produce the same panel.
func generateMockBars(ticker string, count int, end time.Time) []model.RawBar {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	seed := h.Sum32()

	basePrice := 100 + float64(seed%900)
	drift := (float64(seed%7) - 3) * 0.002
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	bars := make([]model.RawBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*drift)
		bars[i] = model.RawBar{
			Ticker: ticker,
			Date:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: float64(100000 + int(seed%50000) + i*1000),
		}
	}
	return bars
}
