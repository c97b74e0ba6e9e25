package util

import (
	"context"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
)

// UnidadesCache - read-through кеш справочника единиц измерения.
// Поколение из GetUnidades передается в SetUnidades, чтобы список,
// прочитанный до инвалидации, не вернулся в кеш.
type UnidadesCache interface {
	GetUnidades(ctx context.Context) ([]entity.UnidadeMedida, int64, bool, error)
	SetUnidades(ctx context.Context, geracao int64, unidades []entity.UnidadeMedida, ttl time.Duration) error
	DeleteUnidades(ctx context.Context) error
}

// RevocationChecker проверяет jti по списку отозванных сессий
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
