// README: Daily generation counters backed by Redis hashes.
package usage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldOutcomePrefix  = "outcome:"
	fieldPromptTokens   = "prompt_tokens"
	fieldResponseTokens = "response_tokens"
)

// Counter keeps daily outcome and token totals in one Redis hash per UTC day.
type Counter struct {
	rdb    *redis.Client
	prefix string
}

func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb, prefix: "wanderplan:usage:"}
}

func (c *Counter) key(day time.Time) string {
	return c.prefix + day.UTC().Format(dayLayout)
}

// Incr adds rec to the counters of the day it was created.
func (c *Counter) Incr(ctx context.Context, rec Record) error {
	key := c.key(rec.CreatedAt)
	pipe := c.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldOutcomePrefix+rec.Outcome, 1)
	if rec.PromptTokens > 0 {
		pipe.HIncrBy(ctx, key, fieldPromptTokens, int64(rec.PromptTokens))
	}
	if rec.ResponseTokens > 0 {
		pipe.HIncrBy(ctx, key, fieldResponseTokens, int64(rec.ResponseTokens))
	}
	pipe.Expire(ctx, key, counterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("incr usage counters: %w", err)
	}
	return nil
}

// Daily reads the counters for day. A day with no traffic yields zero counts.
func (c *Counter) Daily(ctx context.Context, day time.Time) (*DailyCounts, error) {
	fields, err := c.rdb.HGetAll(ctx, c.key(day)).Result()
	if err != nil {
		return nil, fmt.Errorf("read usage counters: %w", err)
	}

	out := &DailyCounts{
		Day:      day.UTC().Format(dayLayout),
		Outcomes: make(map[string]int64),
	}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == fieldPromptTokens:
			out.PromptTokens = n
		case field == fieldResponseTokens:
			out.ResponseTokens = n
		case strings.HasPrefix(field, fieldOutcomePrefix):
			out.Outcomes[strings.TrimPrefix(field, fieldOutcomePrefix)] = n
			out.Requests += n
		}
	}
	return out, nil
}
