package redis

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// Init connects the catalog cache. Redis is optional: with no REDIS_ADDR, or
// an unreachable server, every cache call becomes a no-op.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, catalog cache disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Printf("Redis unavailable, catalog cache disabled: %v", err)
		Client = nil
		return
	}
	log.Println("✅ Connected to Redis")
}

// GetJSON loads a cached value into dest, reporting whether it was present.
func GetJSON(key string, dest any) bool {
	if Client == nil {
		return false
	}
	raw, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// SetJSON caches a value with a TTL, best-effort.
func SetJSON(key string, value any, ttl time.Duration) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	Client.Set(Ctx, key, raw, ttl)
}

// Delete drops a cached key, best-effort.
func Delete(key string) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, key)
}
