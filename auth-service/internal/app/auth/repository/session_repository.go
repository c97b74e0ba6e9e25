package repository

import (
	"context"
	"fmt"
	"time"

	"fichaspro/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// RevokedSessionPrefix - тот же префикс читает шлюз fichas-service
const RevokedSessionPrefix = "sessao:revogada:"

type redisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

// Revoke помечает jti отозванным. Истекший токен не записывается.
func (r *redisSessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, RevokedSessionPrefix+tokenID, "1", ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpExist)
	defer timer.ObserveDuration()

	n, err := r.client.Exists(ctx, RevokedSessionPrefix+tokenID).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpExist)
		return false, fmt.Errorf("failed to check revoked session: %w", err)
	}
	return n > 0, nil
}
