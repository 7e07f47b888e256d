package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// served-sentence sets expire after a day of inactivity; a session is
// short-lived non-repeat tracking, not durable history.
const setTTL = 24 * time.Hour

// RedisSetStore is the shared-cache implementation of the session
// deduplication store, for deployments running more than one instance.
type RedisSetStore struct {
	rdb *redis.Client
}

// NewRedisSetStore creates a set store over the given Redis client.
func NewRedisSetStore(rdb *redis.Client) *RedisSetStore {
	return &RedisSetStore{rdb: rdb}
}

func setKey(key string) string {
	return fmt.Sprintf("session:%s:served", key)
}

// Members returns the sentences already served under key. Redis errors are
// logged and treated as an empty set: dedup degrades to possible repeats
// rather than failing issuance.
func (s *RedisSetStore) Members(key string) []string {
	if s == nil || s.rdb == nil {
		return nil
	}
	members, err := s.rdb.SMembers(context.Background(), setKey(key)).Result()
	if err != nil {
		log.Printf("redis SMEMBERS failed for %s: %v", key, err)
		return nil
	}
	return members
}

// Add records a served sentence and refreshes the set's TTL.
func (s *RedisSetStore) Add(key, member string) {
	if s == nil || s.rdb == nil {
		return
	}
	ctx := context.Background()
	redisKey := setKey(key)
	if err := s.rdb.SAdd(ctx, redisKey, member).Err(); err != nil {
		log.Printf("redis SADD failed for %s: %v", key, err)
		return
	}
	s.rdb.Expire(ctx, redisKey, setTTL)
}

// Clear drops the served set for key.
func (s *RedisSetStore) Clear(key string) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), setKey(key)).Err(); err != nil {
		log.Printf("redis DEL failed for %s: %v", key, err)
	}
}
