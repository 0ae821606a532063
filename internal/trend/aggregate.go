// Package trend turns domain record lists into ordered yearly or monthly
// series of conforming/nonconforming counts. All functions are pure: the same
// input always yields the same ordered output.
package trend

import (
	"sort"
	"time"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// Observation is one classified data point: a timestamp that decides the
// bucket and a conform/nonconform increment pair. An observation with both
// increments zero still creates its bucket.
type Observation struct {
	At         time.Time
	Conform    float64
	Nonconform float64
}

// AggregateYearly groups observations by calendar year and returns the
// buckets in ascending year order, formatted as "2006".
func AggregateYearly(obs []Observation) []models.TrendPoint {
	return aggregate(obs, func(t time.Time) int {
		return t.Year()
	}, func(t time.Time) string {
		return t.Format("2006")
	})
}

// AggregateMonthly groups observations by calendar month and returns the
// buckets in ascending chronological order, formatted as "Jan 2006".
func AggregateMonthly(obs []Observation) []models.TrendPoint {
	return aggregate(obs, func(t time.Time) int {
		return t.Year()*12 + int(t.Month()) - 1
	}, func(t time.Time) string {
		return t.Format("Jan 2006")
	})
}

// aggregate buckets observations by an ordinal key. The formatted period
// label comes from the first observation seen for each bucket, so every
// bucket keeps exactly one label.
func aggregate(obs []Observation, keyOf func(time.Time) int, labelOf func(time.Time) string) []models.TrendPoint {
	type bucket struct {
		label      string
		conform    float64
		nonconform float64
	}

	buckets := make(map[int]*bucket)
	for _, o := range obs {
		key := keyOf(o.At)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{label: labelOf(o.At)}
			buckets[key] = b
		}
		b.conform += o.Conform
		b.nonconform += o.Nonconform
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]models.TrendPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, models.TrendPoint{
			Period:     b.label,
			Conform:    b.conform,
			Nonconform: b.nonconform,
		})
	}
	return out
}

// TopRecent returns the n most recent periods of an ascending series, still
// in ascending order. Equivalent to sorting descending, slicing n and
// reversing; never returns more than n points.
func TopRecent(points []models.TrendPoint, n int) []models.TrendPoint {
	if n <= 0 {
		return nil
	}
	if len(points) <= n {
		out := make([]models.TrendPoint, len(points))
		copy(out, points)
		return out
	}
	out := make([]models.TrendPoint, n)
	copy(out, points[len(points)-n:])
	return out
}
