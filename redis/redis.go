package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects to Redis when REDIS_ADDR is configured. Without it
// the client stays nil and token revocation is disabled.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		fmt.Println("REDIS_ADDR not set, token revocation disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const revokedPrefix = "revoked:"

// RevokeToken blacklists a token until its natural expiry.
func RevokeToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, revokedPrefix+token, "1", ttl).Err()
}

// IsTokenRevoked reports whether the token was blacklisted by a logout.
func IsTokenRevoked(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, revokedPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
