package calculator

import (
	"math"

	"MarketBreadth/internal/model"
)

// VolumeLookback is the number of bars in the relative volume baseline.
const VolumeLookback = 20

// CalculateDailyReturn returns the last-day close change in percent, unrounded.
// The bars must be date-ascending.
func CalculateDailyReturn(bars []model.RawBar) (float64, error) {
	if len(bars) < 2 {
		return 0, ErrInsufficientData
	}
	closes := extractCloses(bars)
	last, prev := closes[len(closes)-1], closes[len(closes)-2]
	ret := (last/prev - 1) * 100
	if math.IsNaN(ret) || math.IsInf(ret, 0) {
		return 0, ErrUndefinedRatio
	}
	return ret, nil
}

// CalculateRelativeVolume divides the last volume by the mean of the
// preceding lookback volumes. With lookback+1 bars or fewer the baseline is
// every bar except the last.
func CalculateRelativeVolume(bars []model.RawBar, lookback int) (float64, error) {
	if len(bars) < 2 {
		return 0, ErrInsufficientData
	}
	vols := extractVolumes(bars)
	n := len(vols)
	prior := vols[:n-1]
	if n > lookback+1 {
		prior = vols[n-1-lookback : n-1]
	}
	avg, err := Mean(prior)
	if err != nil {
		return 0, err
	}
	if !(avg > 0) {
		return 0, ErrUndefinedRatio
	}
	rel := vols[n-1] / avg
	if math.IsNaN(rel) || math.IsInf(rel, 0) {
		return 0, ErrUndefinedRatio
	}
	return rel, nil
}
