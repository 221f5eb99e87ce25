package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest installs client (a redismock client, or nil to turn
// rate limiting off) and marks the singleton as connected, so a later
// ConnectRedis returns it instead of dialing REDIS_ADDR.
func SetRedisClientForTest(client *redis.Client) {
	redisOnce.Do(func() {})
	redisClient = client
}

// ResetRedisClientForTest forgets the injected client and lets ConnectRedis
// dial again.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
