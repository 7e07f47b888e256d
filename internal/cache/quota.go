package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// quota keys are date-scoped, so they only need to outlive their own day.
const quotaTTL = 48 * time.Hour

// RedisQuota is the shared-cache implementation of the daily quota counter.
// Rollover needs no explicit reset: each day consumes a fresh date-scoped
// key and stale keys expire on their own.
type RedisQuota struct {
	rdb     *redis.Client
	ceiling int
	now     func() time.Time
}

// NewRedisQuota creates a quota counter with the given daily ceiling over
// the given Redis client.
func NewRedisQuota(rdb *redis.Client, ceiling int) *RedisQuota {
	return &RedisQuota{
		rdb:     rdb,
		ceiling: ceiling,
		now:     time.Now,
	}
}

func (q *RedisQuota) key(userID, date string) string {
	return fmt.Sprintf("quota:%s:%s", userID, date)
}

func (q *RedisQuota) today() string {
	return q.now().Format("2006-01-02")
}

// TryConsume takes one unit of today's quota. A Redis failure is logged and
// allows the request through: the quota is a soft usage cap, not a
// billing-accurate counter.
func (q *RedisQuota) TryConsume(userID string) bool {
	if q == nil || q.rdb == nil {
		return true
	}
	ctx := context.Background()
	key := q.key(userID, q.today())

	count, err := q.rdb.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		log.Printf("redis GET failed for %s: %v", key, err)
		return true
	}
	if count >= q.ceiling {
		return false
	}

	n, err := q.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("redis INCR failed for %s: %v", key, err)
		return true
	}
	if n == 1 {
		q.rdb.Expire(ctx, key, quotaTTL)
	}
	return true
}

// Count returns how much of today's quota the user has consumed.
func (q *RedisQuota) Count(userID string) int {
	if q == nil || q.rdb == nil {
		return 0
	}
	count, err := q.rdb.Get(context.Background(), q.key(userID, q.today())).Int()
	if err != nil {
		return 0
	}
	return count
}

// Ceiling returns the configured daily limit.
func (q *RedisQuota) Ceiling() int {
	return q.ceiling
}

// Reset zeroes the user's counter for the given date, or today when date is
// empty. Administrative operation only.
func (q *RedisQuota) Reset(userID, date string) {
	if q == nil || q.rdb == nil {
		return
	}
	if date == "" {
		date = q.today()
	}
	if err := q.rdb.Del(context.Background(), q.key(userID, date)).Err(); err != nil {
		log.Printf("redis DEL failed for quota %s: %v", userID, err)
	}
}
