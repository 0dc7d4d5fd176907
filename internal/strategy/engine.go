package strategy

import (
	"errors"
	"math"
	"sort"

	"MarketBreadth/internal/calculator"
	"MarketBreadth/internal/model"

	"github.com/rs/zerolog"
)

// Evaluate computes the per-ticker metrics and the market summary for a
// series table. The executive summary is left empty for the narrative stage.
func Evaluate(table *model.SeriesTable, logger zerolog.Logger) ([]model.TickerMetric, model.MarketSummary) {
	metrics := ComputeMetrics(table, logger)
	return metrics, Summarize(metrics)
}

// ComputeMetrics returns one metric per ticker with a defined daily return,
// in ascending ticker order. Excluded tickers are logged at debug level.
func ComputeMetrics(table *model.SeriesTable, logger zerolog.Logger) []model.TickerMetric {
	tickers := table.Tickers()
	sort.Strings(tickers)

	metrics := make([]model.TickerMetric, 0, len(tickers))
	for _, tk := range tickers {
		m, err := ComputeTickerMetric(tk, table.Bars(tk))
		if err != nil {
			logger.Debug().Str("ticker", tk).Err(err).Msg("ticker excluded from metrics")
			continue
		}
		if m.VolRel20 == nil {
			logger.Debug().Str("ticker", tk).Msg("relative volume undefined")
		}
		metrics = append(metrics, m)
	}
	return metrics
}

// ComputeTickerMetric derives the last-day metric from date-ascending bars.
// It fails when there are fewer than two bars or the daily return is undefined.
// An undefined relative volume leaves VolRel20 nil.
func ComputeTickerMetric(ticker string, bars []model.RawBar) (model.TickerMetric, error) {
	ret, err := calculator.CalculateDailyReturn(bars)
	if err != nil {
		return model.TickerMetric{}, err
	}

	last := bars[len(bars)-1]
	m := model.TickerMetric{
		Ticker:      ticker,
		CloseLast:   calculator.Round(last.Close, 2),
		DateLast:    last.Date,
		DailyRetPct: calculator.Round(ret, 2),
		VolumeLast:  int64(last.Volume),
	}

	rel, err := calculator.CalculateRelativeVolume(bars, calculator.VolumeLookback)
	switch {
	case err == nil:
		m.VolRel20 = calculator.RoundPtr(rel, 2)
	case !errors.Is(err, calculator.ErrUndefinedRatio):
		return model.TickerMetric{}, err
	}
	return m, nil
}

// Summarize computes the market breadth statistics and sentiment over metrics.
// Statistics that cannot be computed are NaN; ADRatio is +Inf without declines.
func Summarize(metrics []model.TickerMetric) model.MarketSummary {
	s := model.MarketSummary{TotalStocks: len(metrics)}

	changes := make([]float64, len(metrics))
	for i, m := range metrics {
		changes[i] = m.DailyRetPct
		switch {
		case m.DailyRetPct > 0:
			s.Advances++
		case m.DailyRetPct < 0:
			s.Declines++
		}
	}
	s.Unchanged = s.TotalStocks - s.Advances - s.Declines

	if s.Declines > 0 {
		s.ADRatio = float64(s.Advances) / float64(s.Declines)
	} else {
		s.ADRatio = math.Inf(1)
	}

	s.AvgChange = orNaN(calculator.Mean(changes))
	s.MedianChange = orNaN(calculator.Median(changes))
	s.StdChange = orNaN(calculator.SampleStdDev(changes))
	s.Sentiment = Classify(s.ADRatio, s.AvgChange)
	return s
}

func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}
