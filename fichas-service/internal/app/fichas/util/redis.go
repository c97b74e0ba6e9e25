package util

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName = "fichas-service"

	unidadesCacheKey   = "unidades:all"
	unidadesGeracaoKey = "unidades:geracao"
	// RevokedSessionPrefix - ключи пишет auth-service при logout
	RevokedSessionPrefix = "sessao:revogada:"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFrom оборачивает готовый клиент (тесты, общий пул)
func NewRedisClientFrom(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// unidadesEntry - список вместе с поколением, на котором он был прочитан из БД
type unidadesEntry struct {
	Geracao  int64                  `json:"geracao"`
	Unidades []entity.UnidadeMedida `json:"unidades"`
}

// SetUnidades кладет список, прочитанный при поколении geracao. Если с тех пор
// кеш инвалидировали, запись не будет принята GetUnidades.
func (r *RedisClient) SetUnidades(ctx context.Context, geracao int64, unidades []entity.UnidadeMedida, ttl time.Duration) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(unidadesEntry{Geracao: geracao, Unidades: unidades})
	if err != nil {
		return fmt.Errorf("failed to marshal unidades: %w", err)
	}

	if err := r.client.Set(ctx, unidadesCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set unidades in cache: %w", err)
	}
	return nil
}

// GetUnidades возвращает текущее поколение и found == false при промахе кеша
// или при записи от устаревшего поколения
func (r *RedisClient) GetUnidades(ctx context.Context) ([]entity.UnidadeMedida, int64, bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	values, err := r.client.MGet(ctx, unidadesGeracaoKey, unidadesCacheKey).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, 0, false, fmt.Errorf("failed to get unidades from cache: %w", err)
	}

	var geracao int64
	if raw, ok := values[0].(string); ok {
		if geracao, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, false, fmt.Errorf("failed to parse unidades generation: %w", err)
		}
	}

	raw, ok := values[1].(string)
	if !ok {
		metrics.RecordCacheMiss(serviceName, "unidades")
		return nil, geracao, false, nil
	}

	var entry unidadesEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, geracao, false, fmt.Errorf("failed to unmarshal unidades: %w", err)
	}
	if entry.Geracao != geracao {
		metrics.RecordCacheMiss(serviceName, "unidades")
		return nil, geracao, false, nil
	}

	metrics.RecordCacheHit(serviceName, "unidades")
	return entry.Unidades, geracao, true, nil
}

// DeleteUnidades сдвигает поколение и удаляет запись
func (r *RedisClient) DeleteUnidades(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, unidadesGeracaoKey)
		pipe.Del(ctx, unidadesCacheKey)
		return nil
	})
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete unidades from cache: %w", err)
	}
	return nil
}

// IsRevoked - true, если auth-service отметил jti при logout
func (r *RedisClient) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpExist)
	defer timer.ObserveDuration()

	n, err := r.client.Exists(ctx, RevokedSessionPrefix+tokenID).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpExist)
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return n > 0, nil
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
