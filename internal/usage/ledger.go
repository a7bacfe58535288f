// Package usage keeps a per-day count of tool invocations in Redis so
// operators can see how many CoinMarketCap credits each tool consumes.
// The ledger is write-only from the dispatcher's point of view and never
// influences a response.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cmc-mcp/internal/models"
)

const (
	keyPrefix     = "usage:"
	dateLayout    = "2006-01-02"
	recordTimeout = 2 * time.Second
)

// Ledger records invocations as HINCRBY usage:{date} {tool} 1.
type Ledger struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New connects to Redis and verifies the connection.
func New(redisURL, redisPassword string, ttl time.Duration, logger *slog.Logger) (*Ledger, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if redisPassword != "" {
		opt.Password = redisPassword
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewWithClient(client, ttl, logger), nil
}

// NewWithClient wraps an existing client without pinging it.
func NewWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Ledger {
	return &Ledger{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "usage_ledger"),
		now:    time.Now,
	}
}

// Key returns the hash key holding counts for the day containing t (UTC).
func Key(t time.Time) string {
	return keyPrefix + t.UTC().Format(dateLayout)
}

// Record increments the counter for tool. Failures are logged and dropped;
// the ledger must never fail an invocation.
func (l *Ledger) Record(ctx context.Context, tool string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	key := Key(l.now())
	pipe := l.client.TxPipeline()
	pipe.HIncrBy(ctx, key, tool, 1)
	if l.ttl > 0 {
		pipe.Expire(ctx, key, l.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("usage_record_failed",
			"tool_name", tool,
			"key", key,
			"error", err,
		)
	}
}

// Report returns the counts recorded on the given day.
func (l *Ledger) Report(ctx context.Context, day time.Time) (*models.UsageReport, error) {
	key := Key(day)
	raw, err := l.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL failed: %w", err)
	}

	report := &models.UsageReport{
		Date:  day.UTC().Format(dateLayout),
		Tools: make(map[string]int64, len(raw)),
	}
	for tool, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			l.logger.Warn("usage_counter_corrupt", "key", key, "tool_name", tool, "value", v)
			continue
		}
		report.Tools[tool] = n
		report.Total += n
	}
	return report, nil
}

// Close closes the Redis connection.
func (l *Ledger) Close() error {
	return l.client.Close()
}
