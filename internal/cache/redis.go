package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the quote cache. An empty addr disables caching and
// returns nil; the quote service treats a nil client as a pass-through. A
// configured but unreachable Redis is a startup failure.
func InitRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_URL not set, quote caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
	return client
}
