package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MarketBreadth/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

func TestParseBars(t *testing.T) {
	data := `[
		{"date":"2025-02-05","o":11,"h":13,"l":10.5,"c":12.5,"v":2000,"dr":0.04},
		{"date":"2025-02-04","o":10,"h":15,"l":8,"c":12,"v":5000}
	]`
	bars, err := ParseBars([]byte(data), "GGAL")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(bars))

	dr := 0.04
	want := []model.RawBar{
		{Ticker: "GGAL", Date: time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC), Open: 10, High: 15, Low: 8, Close: 12, Volume: 5000},
		{Ticker: "GGAL", Date: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), Open: 11, High: 13, Low: 10.5, Close: 12.5, Volume: 2000, DailyReturn: &dr},
	}
	if !cmp.Equal(want, bars) {
		t.Errorf("mismatching bars: %s", cmp.Diff(want, bars))
	}
}

func TestParseBars_ExplicitKeysAndTimestamps(t *testing.T) {
	abbreviated, err := ParseBars([]byte(`[{"date":"2025-02-04T00:00:00","o":1,"h":2,"l":0.5,"c":1.5,"v":10}]`), "BMA")
	assert.NoError(t, err)
	explicit, err := ParseBars([]byte(`[{"date":"2025-02-04 00:00:00","open":1,"high":2,"low":0.5,"close":1.5,"volume":10}]`), "BMA")
	assert.NoError(t, err)
	assert.Equal(t, abbreviated, explicit)
}

func TestParseBars_Empty(t *testing.T) {
	bars, err := ParseBars([]byte(`[]`), "BMA")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(bars))
}

func TestParseBars_Malformed(t *testing.T) {
	payloads := []string{
		`not json`,
		`{"detail":"not found"}`,
		`[1,2,3]`,
		`[{"date":"yesterday","c":1}]`,
		`[{"date":"2025-02-04","o":1}]`,
		`[{"date":"2025-02-04","o":1,"h":1e400,"l":1,"c":1,"v":10}]`,
		`[{"date":"2025-02-04","c":-1e400}]`,
		`[{"date":"2025-02-04","c":10,"v":1e999}]`,
		`[{"date":"2025-02-03","c":10},{"date":"2025-02-04","c":11,"dr":1e400}]`,
	}
	for _, p := range payloads {
		_, err := ParseBars([]byte(p), "BMA")
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("payload %q: expected malformed payload error, got %v", p, err)
		}
	}
}

func TestData912Fetcher(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		switch r.URL.Path {
		case "/historical/stocks/GGAL":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"date":"2025-02-04","o":10,"h":15,"l":8,"c":12,"v":5000}]`))
		case "/historical/stocks/EMPTY":
			w.Write([]byte(`[]`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	f := NewData912Fetcher(srv.URL+"/", time.Second, zerolog.Nop())
	assert.Equal(t, "data912", f.Name())
	ctx := context.Background()

	// Ensure a valid payload is fetched from the historical path.
	bars, err := f.FetchHistory(ctx, "GGAL")
	assert.NoError(t, err)
	assert.Equal(t, "/historical/stocks/GGAL", gotPath)
	assert.Equal(t, 1, len(bars))
	assert.Equal(t, "GGAL", bars[0].Ticker)

	// Ensure an empty payload is a valid absence of data.
	bars, err = f.FetchHistory(ctx, "EMPTY")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(bars))

	// Ensure non-success statuses are reported.
	_, err = f.FetchHistory(ctx, "FAIL")
	var statusErr *StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestData912Fetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := NewData912Fetcher(srv.URL, 20*time.Millisecond, zerolog.Nop())
	_, err := f.FetchHistory(context.Background(), "SLOW")
	assert.Error(t, err)
}

func TestCollect_NonFiniteBarSkipsTicker(t *testing.T) {
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++
		switch r.URL.Path {
		case "/historical/stocks/BAD":
			w.Write([]byte(`[{"date":"2025-02-03","c":10,"v":100},{"date":"2025-02-04","o":1,"h":1e400,"l":1,"c":11,"v":200}]`))
		default:
			w.Write([]byte(`[{"date":"2025-02-03","c":10,"v":100},{"date":"2025-02-04","c":11,"v":200}]`))
		}
	}))
	defer srv.Close()

	var waits []time.Duration
	c := newTestCollector(NewData912Fetcher(srv.URL, time.Second, zerolog.Nop()), []string{"BAD", "GGAL"}, &waits)

	table, stats, err := c.Collect(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, hits["/historical/stocks/BAD"])
	assert.Equal(t, Stats{Requested: 2, Fetched: 1, Failed: 1}, stats)
	assert.Equal(t, []string{"GGAL"}, table.Tickers())
}
