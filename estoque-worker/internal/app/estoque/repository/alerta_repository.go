package repository

import (
	"context"
	"fmt"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type alertaRepository struct {
	client *redis.Client
}

func NewAlertaRepository(client *redis.Client) AlertaRepository {
	return &alertaRepository{client: client}
}

func (r *alertaRepository) TryMark(ctx context.Context, insumoID uuid.UUID, ttl time.Duration) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSetNX)
	defer timer.ObserveDuration()

	ok, err := r.client.SetNX(ctx, entity.AlertaKey(insumoID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSetNX)
		return false, fmt.Errorf("failed to mark alert: %w", err)
	}
	return ok, nil
}

func (r *alertaRepository) Clear(ctx context.Context, insumoID uuid.UUID) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, entity.AlertaKey(insumoID)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to clear alert mark: %w", err)
	}
	return nil
}
