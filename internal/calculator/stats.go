package calculator

import (
	"errors"
	"math"
	"sort"

	"MarketBreadth/internal/model"
)

var (
	// ErrInsufficientData is returned when a series is too short for a statistic.
	ErrInsufficientData = errors.New("not enough data")
	// ErrUndefinedRatio is returned when a ratio's denominator is zero or undefined.
	ErrUndefinedRatio = errors.New("ratio undefined")
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInsufficientData
	}
	return CalculateSMA(values, len(values))
}

// Median returns the median of values, averaging the middle pair for even lengths.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrInsufficientData
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// SampleStdDev returns the sample (n-1) standard deviation of values.
func SampleStdDev(values []float64) (float64, error) {
	n := len(values)
	if n < 2 {
		return 0, ErrInsufficientData
	}
	mean, _ := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1)), nil
}

func extractCloses(bars []model.RawBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractVolumes(bars []model.RawBar) []float64 {
	vols := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = b.Volume
	}
	return vols
}
