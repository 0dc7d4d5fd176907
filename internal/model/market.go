package model

import (
	"sort"
	"time"
)

// DateLayout is the calendar date layout used for bars and the export.
const DateLayout = "2006-01-02"

// RawBar is one trading day of a ticker as delivered by the provider.
type RawBar struct {
	Ticker      string
	Date        time.Time
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	DailyReturn *float64 // provider-supplied, optional
}

// SeriesTable holds the bar series of every fetched ticker, in fetch order.
type SeriesTable struct {
	order []string
	bars  map[string][]RawBar
}

// NewSeriesTable creates an empty table.
func NewSeriesTable() *SeriesTable {
	return &SeriesTable{bars: make(map[string][]RawBar)}
}

// Append adds the bars of a ticker. Bars are sorted by date and rows sharing
// a date collapse to the last one received. Appending an existing ticker
// merges into its series.
func (t *SeriesTable) Append(ticker string, bars []RawBar) {
	if len(bars) == 0 {
		return
	}
	if _, ok := t.bars[ticker]; !ok {
		t.order = append(t.order, ticker)
	}
	merged := append(append([]RawBar(nil), t.bars[ticker]...), bars...)
	t.bars[ticker] = SortBars(merged)
}

// Tickers returns the tickers in the order they were appended.
func (t *SeriesTable) Tickers() []string {
	return append([]string(nil), t.order...)
}

// Bars returns the date-ascending series of a ticker.
func (t *SeriesTable) Bars(ticker string) []RawBar {
	return t.bars[ticker]
}

// Len returns the total number of rows across all tickers.
func (t *SeriesTable) Len() int {
	n := 0
	for _, b := range t.bars {
		n += len(b)
	}
	return n
}

// Rows returns the union of all series, ticker-major and date-ascending.
func (t *SeriesTable) Rows() []RawBar {
	rows := make([]RawBar, 0, t.Len())
	for _, tk := range t.order {
		rows = append(rows, t.bars[tk]...)
	}
	return rows
}

// SortBars orders bars by date ascending and keeps the last row for any
// repeated date, so dates are strictly increasing.
func SortBars(bars []RawBar) []RawBar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
