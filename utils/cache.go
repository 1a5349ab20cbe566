// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"quickcourt/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client (slot grids, authenticated users).
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. A failed ping is logged and not
// fatal: every cache reader treats an unreachable Redis as a miss.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("WARNING: Redis cache unreachable at %s: %v", config.AppConfig.RedisAddr, err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
