// Package cache holds a short-TTL Redis cache of assembled report rows.
// The cache is an optimization only: report rows stay transient and are
// recomputed whenever the cache cannot serve them.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// ReportCache caches report rows keyed by (tenant, risk user).
type ReportCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a report cache over an existing Redis client.
func New(rdb *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &ReportCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: slog.Default().With(slog.String("component", "report-cache")),
	}
}

// Get returns cached rows for the tenant/risk-user pair. Any Redis error or
// decode failure is treated as a miss.
func (c *ReportCache) Get(ctx context.Context, tenantID int64, riskUser string) ([]models.RiskReportRow, bool) {
	data, err := c.rdb.Get(ctx, key(tenantID, riskUser)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache get failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var rows []models.RiskReportRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		c.logger.Debug("cache entry corrupt, ignoring", slog.String("error", err.Error()))
		return nil, false
	}
	return rows, true
}

// Set stores rows with the configured TTL. Failures are logged and ignored.
func (c *ReportCache) Set(ctx context.Context, tenantID int64, riskUser string, rows []models.RiskReportRow) {
	data, err := json.Marshal(rows)
	if err != nil {
		c.logger.Debug("cache marshal failed", slog.String("error", err.Error()))
		return
	}
	if err := c.rdb.Set(ctx, key(tenantID, riskUser), data, c.ttl).Err(); err != nil {
		c.logger.Debug("cache set failed", slog.String("error", err.Error()))
	}
}

func key(tenantID int64, riskUser string) string {
	return fmt.Sprintf("risk:report:%d:%s", tenantID, riskUser)
}
