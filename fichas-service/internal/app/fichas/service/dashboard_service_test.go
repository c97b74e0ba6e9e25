package service

import (
	"context"
	"errors"
	"testing"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardResumo(t *testing.T) {
	fichas := new(mocks.MockFichaRepository)
	insumos := new(mocks.MockInsumoRepository)
	fornecedores := new(mocks.MockFornecedorRepository)
	svc := NewDashboardService(fichas, insumos, fornecedores)
	userID := uuid.New()

	fichas.On("Count", mock.Anything, userID).Return(int64(4), nil)
	insumos.On("Count", mock.Anything, userID).Return(int64(12), nil)
	fornecedores.On("Count", mock.Anything, userID).Return(int64(3), nil)
	insumos.On("ListEstoqueBaixo", mock.Anything, userID).Return([]entity.Insumo{{Nome: "Fermento"}}, nil)

	resumo, err := svc.Resumo(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), resumo.TotalFichas)
	assert.Equal(t, int64(12), resumo.TotalInsumos)
	assert.Equal(t, int64(3), resumo.TotalFornecedores)
	require.Len(t, resumo.InsumosEstoqueBaixo, 1)
}

func TestDashboardResumo_AnyFailureFails(t *testing.T) {
	fichas := new(mocks.MockFichaRepository)
	insumos := new(mocks.MockInsumoRepository)
	fornecedores := new(mocks.MockFornecedorRepository)
	svc := NewDashboardService(fichas, insumos, fornecedores)
	userID := uuid.New()

	fichas.On("Count", mock.Anything, userID).Return(int64(4), nil)
	insumos.On("Count", mock.Anything, userID).Return(int64(0), errors.New("timeout"))
	fornecedores.On("Count", mock.Anything, userID).Return(int64(3), nil)
	insumos.On("ListEstoqueBaixo", mock.Anything, userID).Return([]entity.Insumo{}, nil)

	_, err := svc.Resumo(context.Background(), userID)

	assert.Error(t, err)
}
