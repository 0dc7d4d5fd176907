package model

// ExportDocument is the JSON artifact written at the end of a run.
type ExportDocument struct {
	GeneratedAt   string         `json:"generated_at"`
	MarketSummary SummaryExport  `json:"market_summary"`
	Tickers       []TickerExport `json:"tickers"`
}

// SummaryExport is the serialized form of MarketSummary. Undefined values are null.
type SummaryExport struct {
	TotalStocks      int      `json:"total_stocks"`
	Advances         int      `json:"advances"`
	Declines         int      `json:"declines"`
	Unchanged        int      `json:"unchanged"`
	ADRatio          *float64 `json:"ad_ratio"`
	AvgChange        *float64 `json:"avg_change"`
	MedianChange     *float64 `json:"median_change"`
	StdChange        *float64 `json:"std_change"`
	Sentiment        string   `json:"sentiment"`
	SentimentColor   string   `json:"sentiment_color"`
	ExecutiveSummary string   `json:"executive_summary"`
}

// TickerExport is one ticker entry of the export.
type TickerExport struct {
	Ticker     string       `json:"ticker"`
	CloseLast  float64      `json:"close_last"`
	DailyRet   float64      `json:"daily_ret"`
	VolumeLast int64        `json:"volume_last"`
	VolRel20   *float64     `json:"vol_rel20"`
	History    []HistoryBar `json:"history"`
}

// HistoryBar is one exported bar.
type HistoryBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
