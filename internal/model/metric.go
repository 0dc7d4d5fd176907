package model

import "time"

// TickerMetric holds the last-day statistics of one ticker.
type TickerMetric struct {
	Ticker      string
	CloseLast   float64
	DateLast    time.Time
	DailyRetPct float64
	VolumeLast  int64
	VolRel20    *float64 // nil when the trailing volume average is zero or undefined
}

// Sentiment is a discrete market mood label with its display color.
type Sentiment struct {
	Label string
	Color string
}

// MarketSummary holds the breadth statistics of the whole panel.
// ADRatio is +Inf when there are no declines; StdChange is NaN with fewer
// than two metrics.
type MarketSummary struct {
	TotalStocks      int
	Advances         int
	Declines         int
	Unchanged        int
	ADRatio          float64
	AvgChange        float64
	MedianChange     float64
	StdChange        float64
	Sentiment        Sentiment
	ExecutiveSummary string
}
