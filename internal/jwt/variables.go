package jwt

import (
	"time"

	"venue-booking-backend/internal/env"

	"github.com/go-redis/redis/v8"
)

var (
	ADMIN_SECRET string
	RedisClient  *redis.Client
)

const RefreshTokenTTL = 24 * 30 * time.Hour

const (
	RoleAdmin Role = iota
)

var RoleSecrets = map[Role]string{}

func init() {
	ADMIN_SECRET = env.Get(env.AdminSecretKey)
	RoleSecrets[RoleAdmin] = ADMIN_SECRET

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.AuthRedisURL),
		Password: env.Get(env.AuthRedisPass),
		DB:       0,
	})
}
