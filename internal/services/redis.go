package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const roleCacheTTL = 10 * time.Minute

// InitRedis initializes the Redis client used for role lookups.
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	RedisClient = client
	return nil
}

func roleKey(email string) string {
	return fmt.Sprintf("user:role:%s", email)
}

// GetCachedUserRole returns the cached role for an email, or "" on a miss.
// No-op when Redis is not configured.
func GetCachedUserRole(ctx context.Context, email string) string {
	if RedisClient == nil {
		return ""
	}
	role, err := RedisClient.Get(ctx, roleKey(email)).Result()
	if err != nil {
		return ""
	}
	return role
}

// SetCachedUserRole caches a role lookup result.
func SetCachedUserRole(ctx context.Context, email, role string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Set(ctx, roleKey(email), role, roleCacheTTL)
}

// InvalidateUserRole drops a cached role after a role change.
func InvalidateUserRole(ctx context.Context, email string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, roleKey(email))
}
