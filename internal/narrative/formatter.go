package narrative

import (
	"fmt"
	"math"
	"strings"

	"MarketBreadth/internal/model"
)

// DefaultPanelTitle names the panel in the first sentence of the summary.
const DefaultPanelTitle = "Argentine equities panel"

// Breadth commentary thresholds on the A/D ratio.
const (
	positiveBreadthRatio = 1.5
	negativeBreadthRatio = 0.67
)

// BuildExecutiveSummary produces the fixed-template narrative for a summary.
// metrics supplies the top gainer and loser; ties go to the first occurrence.
func BuildExecutiveSummary(panel string, s model.MarketSummary, metrics []model.TickerMetric) string {
	if panel == "" {
		panel = DefaultPanelTitle
	}
	sentences := make([]string, 0, 3)

	sentences = append(sentences, fmt.Sprintf(
		"%s: %d instruments analyzed, %d advancing / %d declining (A/D ratio %s), average change %s%%.",
		panel, s.TotalStocks, s.Advances, s.Declines, formatRatio(s.ADRatio), formatSigned(s.AvgChange)))

	switch {
	case s.TotalStocks == 0:
		sentences = append(sentences, "Mixed breadth: no dominant direction.")
	case s.ADRatio >= positiveBreadthRatio:
		sentences = append(sentences, "Positive breadth: more than half of the panel is advancing.")
	case s.ADRatio <= negativeBreadthRatio:
		sentences = append(sentences, "Negative breadth: broad deterioration across the panel.")
	default:
		sentences = append(sentences, "Mixed breadth: no dominant direction.")
	}

	if gainer, loser, ok := Extremes(metrics); ok {
		sentences = append(sentences, fmt.Sprintf("Top gainer: %s (%s%%). Top loser: %s (%s%%).",
			gainer.Ticker, formatSigned(gainer.DailyRetPct), loser.Ticker, formatSigned(loser.DailyRetPct)))
	}

	return strings.Join(sentences, " ")
}

// Extremes returns the metrics with the highest and lowest daily return.
func Extremes(metrics []model.TickerMetric) (maxM, minM model.TickerMetric, ok bool) {
	if len(metrics) == 0 {
		return maxM, minM, false
	}
	maxM, minM = metrics[0], metrics[0]
	for _, m := range metrics[1:] {
		if m.DailyRetPct > maxM.DailyRetPct {
			maxM = m
		}
		if m.DailyRetPct < minM.DailyRetPct {
			minM = m
		}
	}
	return maxM, minM, true
}

// ConfirmationLine is the single line printed after a successful run.
func ConfirmationLine(outputName, generatedAt string) string {
	return fmt.Sprintf("%s generated: %s", outputName, generatedAt)
}

func formatRatio(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsNaN(v):
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatSigned(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f", v)
}
