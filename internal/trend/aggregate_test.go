package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestAggregateYearly(t *testing.T) {
	obs := []Observation{
		{At: at(2024, time.March, 1), Conform: 3, Nonconform: 1},
		{At: at(2022, time.July, 15), Conform: 5, Nonconform: 0},
		{At: at(2024, time.December, 31), Conform: 2, Nonconform: 2},
	}

	got := AggregateYearly(obs)
	require.Len(t, got, 2)
	assert.Equal(t, models.TrendPoint{Period: "2022", Conform: 5, Nonconform: 0}, got[0])
	assert.Equal(t, models.TrendPoint{Period: "2024", Conform: 5, Nonconform: 3}, got[1])
}

func TestAggregateYearlyKeepsZeroBuckets(t *testing.T) {
	// An observation with both increments zero still creates its period.
	obs := []Observation{
		{At: at(2023, time.May, 1)},
		{At: at(2024, time.May, 1), Nonconform: 1},
	}

	got := AggregateYearly(obs)
	require.Len(t, got, 2)
	assert.Equal(t, models.TrendPoint{Period: "2023"}, got[0])
}

func TestAggregateYearlyIsDeterministic(t *testing.T) {
	obs := []Observation{
		{At: at(2021, time.January, 1), Conform: 1},
		{At: at(2019, time.June, 1), Conform: 1},
		{At: at(2020, time.March, 1), Nonconform: 1},
		{At: at(2023, time.August, 1), Conform: 1},
	}

	first := AggregateYearly(obs)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AggregateYearly(obs))
	}
	require.Len(t, first, 4)
	assert.Equal(t, "2019", first[0].Period)
	assert.Equal(t, "2023", first[3].Period)
}

func TestAggregateMonthly(t *testing.T) {
	obs := []Observation{
		{At: at(2024, time.February, 10), Conform: 1},
		{At: at(2023, time.December, 5), Nonconform: 2},
		{At: at(2024, time.January, 20), Conform: 4, Nonconform: 1},
		{At: at(2024, time.January, 25), Conform: 1},
	}

	got := AggregateMonthly(obs)
	require.Len(t, got, 3)
	// December 2023 must sort before January 2024 despite the label ordering.
	assert.Equal(t, "Dec 2023", got[0].Period)
	assert.Equal(t, models.TrendPoint{Period: "Jan 2024", Conform: 5, Nonconform: 1}, got[1])
	assert.Equal(t, "Feb 2024", got[2].Period)
}

func TestTopRecent(t *testing.T) {
	series := []models.TrendPoint{
		{Period: "2018"}, {Period: "2019"}, {Period: "2020"},
		{Period: "2021"}, {Period: "2022"}, {Period: "2023"}, {Period: "2024"},
	}

	t.Run("keeps the n most recent in ascending order", func(t *testing.T) {
		got := TopRecent(series, 5)
		require.Len(t, got, 5)
		assert.Equal(t, "2020", got[0].Period)
		assert.Equal(t, "2024", got[4].Period)
	})

	t.Run("short series is returned whole", func(t *testing.T) {
		got := TopRecent(series[:3], 5)
		assert.Len(t, got, 3)
	})

	t.Run("non-positive n yields nil", func(t *testing.T) {
		assert.Nil(t, TopRecent(series, 0))
		assert.Nil(t, TopRecent(series, -1))
	})

	t.Run("does not alias the input", func(t *testing.T) {
		got := TopRecent(series, 2)
		got[0].Period = "mutated"
		assert.Equal(t, "2023", series[5].Period)
	})
}
