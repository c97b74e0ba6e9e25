package mocks

import (
	"context"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockInsumoRepository struct {
	mock.Mock
}

func (m *MockInsumoRepository) ListEstoqueBaixo(ctx context.Context) ([]entity.Insumo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Insumo), args.Error(1)
}

type MockAlertaRepository struct {
	mock.Mock
}

func (m *MockAlertaRepository) TryMark(ctx context.Context, insumoID uuid.UUID, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, insumoID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertaRepository) Clear(ctx context.Context, insumoID uuid.UUID) error {
	args := m.Called(ctx, insumoID)
	return args.Error(0)
}

type MockRevisaoRepository struct {
	mock.Mock
}

func (m *MockRevisaoRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRevisaoRepository) Upsert(ctx context.Context, revisao *entity.FichaRevisao) (bool, error) {
	args := m.Called(ctx, revisao)
	return args.Bool(0), args.Error(1)
}

// MockAlertPublisher мок для публикации в estoque_alertas
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
