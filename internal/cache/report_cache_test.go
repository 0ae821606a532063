package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, ttl), mr
}

func TestReportCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	rate := 42.5
	rows := []models.RiskReportRow{{
		RiskName:              "Penerimaan barang reject",
		RiskRate:              &rate,
		Priority:              "Sedang",
		ForecastPrediction:    "Akan Menurun",
		MitigationEffectivity: "insufficient data",
	}}

	_, ok := c.Get(ctx, 7, "Industry")
	assert.False(t, ok, "empty cache misses")

	c.Set(ctx, 7, "Industry", rows)

	got, ok := c.Get(ctx, 7, "Industry")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Penerimaan barang reject", got[0].RiskName)
	require.NotNil(t, got[0].RiskRate)
	assert.Equal(t, 42.5, *got[0].RiskRate)
}

func TestReportCacheKeysAreScoped(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, 7, "Industry", []models.RiskReportRow{{RiskName: "a"}})

	_, ok := c.Get(ctx, 8, "Industry")
	assert.False(t, ok, "another tenant never sees cached rows")
	_, ok = c.Get(ctx, 7, "Retail")
	assert.False(t, ok, "another risk user never sees cached rows")
}

func TestReportCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, 7, "Industry", []models.RiskReportRow{{RiskName: "a"}})
	mr.FastForward(2 * time.Second)

	_, ok := c.Get(ctx, 7, "Industry")
	assert.False(t, ok)
}

func TestReportCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("risk:report:7:Industry", "not json"))

	_, ok := c.Get(context.Background(), 7, "Industry")
	assert.False(t, ok)
}

func TestReportCacheDownRedisIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, ok := c.Get(context.Background(), 7, "Industry")
	assert.False(t, ok, "an unreachable cache degrades to recomputation")
	c.Set(context.Background(), 7, "Industry", nil)
}
