package repository

import (
	"context"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"

	"github.com/google/uuid"
)

const serviceName = "estoque-worker"

// InsumoRepository - чтение остатков из PostgreSQL fichas-service
type InsumoRepository interface {
	// ListEstoqueBaixo возвращает insumos всех пользователей с estoque_atual <= estoque_minimo
	ListEstoqueBaixo(ctx context.Context) ([]entity.Insumo, error)
}

// AlertaRepository - дедупликация алертов в Redis
type AlertaRepository interface {
	// TryMark ставит отметку, если ее еще нет. false - алерт уже отправлялся в пределах ttl
	TryMark(ctx context.Context, insumoID uuid.UUID, ttl time.Duration) (bool, error)

	// Clear снимает отметку, следующее падение остатка снова даст алерт
	Clear(ctx context.Context, insumoID uuid.UUID) error
}

// RevisaoRepository - история ревизий ficha в MongoDB
type RevisaoRepository interface {
	EnsureIndexes(ctx context.Context) error

	// Upsert идемпотентен: повторная доставка того же события не создает дубль.
	// Возвращает true, если документ был вставлен.
	Upsert(ctx context.Context, revisao *entity.FichaRevisao) (bool, error)
}
