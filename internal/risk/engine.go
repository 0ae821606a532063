// Package risk converts trend series into percentage rates, priority tiers,
// year-over-year deltas and mitigation-effectiveness figures.
package risk

import (
	"math"
	"sort"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// Priority tier boundaries. A rate of exactly 71 is Tinggi and exactly 36 is
// Sedang; tests assert on these constants rather than duplicated literals.
const (
	PriorityHighThreshold   = 71.0
	PriorityMediumThreshold = 36.0
)

// RecentPeriodWindow is the number of most recent periods a windowed trend
// series keeps.
const RecentPeriodWindow = 5

// Priority and forecast labels. The report vocabulary is fixed by the
// consuming dashboards.
const (
	PriorityHigh   = "Tinggi"
	PriorityMedium = "Sedang"
	PriorityLow    = "Rendah"

	ForecastIncrease = "Akan Meningkat"
	ForecastDecrease = "Akan Menurun"

	Unavailable      = "unavailable"
	InsufficientData = "insufficient data"
)

// RatePoint is one period's risk rate, derived from a TrendPoint.
type RatePoint struct {
	Period string  `json:"period"`
	Rate   float64 `json:"rate"`
}

// Round2 rounds to two decimal places, the precision every reported figure
// carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RateOf returns numerator/denominator as a percentage rounded to two
// decimals. A zero denominator yields 0.0, never NaN or an error.
func RateOf(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	return Round2(numerator / denominator * 100)
}

// RateSeries converts a trend series into per-period nonconformance rates,
// preserving order.
func RateSeries(points []models.TrendPoint) []RatePoint {
	out := make([]RatePoint, 0, len(points))
	for _, p := range points {
		out = append(out, RatePoint{
			Period: p.Period,
			Rate:   RateOf(p.Nonconform, p.Conform+p.Nonconform),
		})
	}
	return out
}

// PriorityOf classifies a scalar rate into a priority tier. A nil rate means
// the rate could not be computed and maps to "unavailable".
func PriorityOf(rate *float64) string {
	switch {
	case rate == nil:
		return Unavailable
	case *rate >= PriorityHighThreshold:
		return PriorityHigh
	case *rate >= PriorityMediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// DeclineRate returns the percentage decline from previous to current.
// It is 0 when there is no usable previous value or no decline.
func DeclineRate(current, previous float64) float64 {
	if previous <= 0 || current >= previous {
		return 0
	}
	return Round2((previous - current) / previous * 100)
}

// GrowthRate is the symmetric case: the percentage growth from previous to
// current, 0 when there is no usable previous value or no growth.
func GrowthRate(current, previous float64) float64 {
	if previous <= 0 || current <= previous {
		return 0
	}
	return Round2((current - previous) / previous * 100)
}

// MitigationEffectivity compares the two most recent points of a yearly rate
// series and returns the year-over-year improvement percentage. ok is false
// when fewer than two points exist (insufficient data). A rate that held
// steady or worsened scores 0.
func MitigationEffectivity(series []RatePoint) (effectivity float64, ok bool) {
	if len(series) < 2 {
		return 0, false
	}

	sorted := make([]RatePoint, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Period > sorted[j].Period
	})

	current := sorted[0].Rate
	previous := sorted[1].Rate
	if previous > 0 && current < previous {
		return Round2((previous - current) / previous * 100), true
	}
	return 0, true
}

// ForecastPrediction compares the last actual value against the first
// forecast value. Missing series yield "unavailable" rather than an error.
func ForecastPrediction(actual, forecast []SeriesPoint) string {
	if len(actual) == 0 || len(forecast) == 0 {
		return Unavailable
	}
	lastActual := actual[len(actual)-1].Value
	firstForecast := forecast[0].Value
	if lastActual < firstForecast {
		return ForecastIncrease
	}
	return ForecastDecrease
}

// SeriesPoint is one (year, value) observation in a forecast-service series.
type SeriesPoint struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}
