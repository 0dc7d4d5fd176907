package recorder

import (
	"time"

	"MarketBreadth/internal/calculator"
	"MarketBreadth/internal/model"
)

// GeneratedAtLayout formats the generation timestamp (two spaces between date and time).
const GeneratedAtLayout = "2006-01-02  15:04"

// summaryPlaces is the precision of the exported breadth statistics.
const summaryPlaces = 3

// BuildDocument assembles the export: the summary plus, for every metric whose
// ticker has history in table, its metric fields and full bar history.
// Tickers without a metric are not exported.
func BuildDocument(generatedAt time.Time, summary model.MarketSummary, metrics []model.TickerMetric, table *model.SeriesTable) *model.ExportDocument {
	doc := &model.ExportDocument{
		GeneratedAt: generatedAt.Format(GeneratedAtLayout),
		MarketSummary: model.SummaryExport{
			TotalStocks:      summary.TotalStocks,
			Advances:         summary.Advances,
			Declines:         summary.Declines,
			Unchanged:        summary.Unchanged,
			ADRatio:          calculator.RoundPtr(summary.ADRatio, summaryPlaces),
			AvgChange:        calculator.RoundPtr(summary.AvgChange, summaryPlaces),
			MedianChange:     calculator.RoundPtr(summary.MedianChange, summaryPlaces),
			StdChange:        calculator.RoundPtr(summary.StdChange, summaryPlaces),
			Sentiment:        summary.Sentiment.Label,
			SentimentColor:   summary.Sentiment.Color,
			ExecutiveSummary: summary.ExecutiveSummary,
		},
		Tickers: make([]model.TickerExport, 0, len(metrics)),
	}

	for _, m := range metrics {
		bars := table.Bars(m.Ticker)
		if len(bars) == 0 {
			continue
		}
		doc.Tickers = append(doc.Tickers, model.TickerExport{
			Ticker:     m.Ticker,
			CloseLast:  m.CloseLast,
			DailyRet:   m.DailyRetPct,
			VolumeLast: m.VolumeLast,
			VolRel20:   m.VolRel20,
			History:    BuildHistory(bars),
		})
	}
	return doc
}

// BuildHistory converts bars to their exported form: ISO dates, prices
// rounded to 2 decimals and whole-number volumes.
func BuildHistory(bars []model.RawBar) []model.HistoryBar {
	history := make([]model.HistoryBar, len(bars))
	for i, b := range bars {
		history[i] = model.HistoryBar{
			Date:   b.Date.Format(model.DateLayout),
			Open:   calculator.Round(b.Open, 2),
			High:   calculator.Round(b.High, 2),
			Low:    calculator.Round(b.Low, 2),
			Close:  calculator.Round(b.Close, 2),
			Volume: int64(b.Volume),
		}
	}
	return history
}
