package strategy

import "MarketBreadth/internal/model"

// Rules is the ordered sentiment table; the first matching rule wins.
var Rules = []struct {
	Match     func(adRatio, avgChange float64) bool
	Sentiment model.Sentiment
}{
	{
		func(ad, avg float64) bool { return ad >= 2.0 && avg >= 0.5 },
		model.Sentiment{Label: "Broad bullish", Color: "#22c55e"},
	},
	{
		func(ad, avg float64) bool { return ad >= 1.2 && avg >= 0 },
		model.Sentiment{Label: "Moderate bullish", Color: "#86efac"},
	},
	{
		func(ad, avg float64) bool { return ad <= 0.5 && avg <= -0.5 },
		model.Sentiment{Label: "Broad bearish", Color: "#ef4444"},
	},
	{
		func(ad, avg float64) bool { return ad <= 0.8 && avg <= 0 },
		model.Sentiment{Label: "Moderate bearish", Color: "#fca5a5"},
	},
}

// DefaultSentiment applies when no rule matches, including a NaN average.
var DefaultSentiment = model.Sentiment{Label: "Mixed / No trend", Color: "#94a3b8"}

// Classify maps the A/D ratio and average change to a sentiment.
func Classify(adRatio, avgChange float64) model.Sentiment {
	for _, r := range Rules {
		if r.Match(adRatio, avgChange) {
			return r.Sentiment
		}
	}
	return DefaultSentiment
}
