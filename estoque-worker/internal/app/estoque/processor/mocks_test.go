package processor

import (
	"context"

	"fichaspro/estoque-worker/internal/app/estoque/entity"

	"github.com/stretchr/testify/mock"
)

type MockRevisaoService struct {
	mock.Mock
}

func (m *MockRevisaoService) HandleFichaEvent(ctx context.Context, event *entity.FichaEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockEstoqueService struct {
	mock.Mock
}

func (m *MockEstoqueService) HandleInsumoEvent(ctx context.Context, event *entity.InsumoEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEstoqueService) ScanEstoqueBaixo(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
