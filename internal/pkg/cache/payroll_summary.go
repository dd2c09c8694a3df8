package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	PayrollSummaryKeyPrefix = "payroll:summary:"
	DefaultSummaryTTL       = 10 * time.Minute
)

func PayrollSummaryKey(companyID string, month, year int) string {
	return fmt.Sprintf("%s%s:%d:%d", PayrollSummaryKeyPrefix, companyID, year, month)
}

// PayrollSummaryCache keeps period summaries in Redis. Redis failures are logged
// and treated as misses so a cache outage never fails a request.
type PayrollSummaryCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	sf     singleflight.Group
	logger *slog.Logger
}

func NewPayrollSummaryCache(rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *PayrollSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollSummaryCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *PayrollSummaryCache) GetOrLoad(
	ctx context.Context,
	companyID string,
	month, year int,
	load func(ctx context.Context) (payroll.PayrollSummaryResponse, error),
) (payroll.PayrollSummaryResponse, error) {
	key := PayrollSummaryKey(companyID, month, year)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var summary payroll.PayrollSummaryResponse
		if jsonErr := json.Unmarshal(cached, &summary); jsonErr == nil {
			return summary, nil
		}
		c.logger.Warn("discarding unreadable payroll summary cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("payroll summary cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		summary, err := load(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(summary)
		if err == nil {
			if setErr := c.rdb.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
				c.logger.Warn("payroll summary cache write failed", slog.String("key", key), slog.String("error", setErr.Error()))
			}
		}
		return summary, nil
	})
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	return v.(payroll.PayrollSummaryResponse), nil
}

func (c *PayrollSummaryCache) Invalidate(ctx context.Context, companyID string, month, year int) {
	key := PayrollSummaryKey(companyID, month, year)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("failed to invalidate payroll summary cache", slog.String("key", key), slog.String("error", err.Error()))
	}
}
