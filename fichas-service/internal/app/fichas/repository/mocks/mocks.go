package mocks

import (
	"context"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReferenciaRepository мок для ReferenciaRepository
type MockReferenciaRepository struct {
	mock.Mock
}

func (m *MockReferenciaRepository) ListUnidades(ctx context.Context) ([]entity.UnidadeMedida, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UnidadeMedida), args.Error(1)
}

func (m *MockReferenciaRepository) CreateUnidade(ctx context.Context, unidade *entity.UnidadeMedida) error {
	args := m.Called(ctx, unidade)
	return args.Error(0)
}

func (m *MockReferenciaRepository) CountUnidades(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferenciaRepository) ListCategoriasReceitas(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaReceita, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CategoriaReceita), args.Error(1)
}

func (m *MockReferenciaRepository) CreateCategoriaReceita(ctx context.Context, categoria *entity.CategoriaReceita) error {
	args := m.Called(ctx, categoria)
	return args.Error(0)
}

func (m *MockReferenciaRepository) CategoriaReceitaExists(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferenciaRepository) ListCategoriasInsumos(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaInsumo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CategoriaInsumo), args.Error(1)
}

func (m *MockReferenciaRepository) CreateCategoriaInsumo(ctx context.Context, categoria *entity.CategoriaInsumo) error {
	args := m.Called(ctx, categoria)
	return args.Error(0)
}

func (m *MockReferenciaRepository) CategoriaInsumoExists(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockFornecedorRepository мок для FornecedorRepository
type MockFornecedorRepository struct {
	mock.Mock
}

func (m *MockFornecedorRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Fornecedor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Fornecedor), args.Error(1)
}

func (m *MockFornecedorRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Fornecedor, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Fornecedor), args.Error(1)
}

func (m *MockFornecedorRepository) Create(ctx context.Context, fornecedor *entity.Fornecedor) error {
	args := m.Called(ctx, fornecedor)
	return args.Error(0)
}

func (m *MockFornecedorRepository) Update(ctx context.Context, fornecedor *entity.Fornecedor) error {
	args := m.Called(ctx, fornecedor)
	return args.Error(0)
}

func (m *MockFornecedorRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockFornecedorRepository) Exists(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFornecedorRepository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInsumoRepository мок для InsumoRepository
type MockInsumoRepository struct {
	mock.Mock
}

func (m *MockInsumoRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Insumo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Insumo), args.Error(1)
}

func (m *MockInsumoRepository) ListEstoqueBaixo(ctx context.Context, userID uuid.UUID) ([]entity.Insumo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Insumo), args.Error(1)
}

func (m *MockInsumoRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Insumo, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Insumo), args.Error(1)
}

func (m *MockInsumoRepository) Create(ctx context.Context, insumo *entity.Insumo) error {
	args := m.Called(ctx, insumo)
	return args.Error(0)
}

func (m *MockInsumoRepository) Update(ctx context.Context, insumo *entity.Insumo) error {
	args := m.Called(ctx, insumo)
	return args.Error(0)
}

func (m *MockInsumoRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockInsumoRepository) CountOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInsumoRepository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFichaRepository мок для FichaRepository
type MockFichaRepository struct {
	mock.Mock
}

func (m *MockFichaRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.FichaTecnica, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FichaTecnica), args.Error(1)
}

func (m *MockFichaRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.FichaTecnica, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FichaTecnica), args.Error(1)
}

func (m *MockFichaRepository) Create(ctx context.Context, ficha *entity.FichaTecnica) error {
	args := m.Called(ctx, ficha)
	return args.Error(0)
}

func (m *MockFichaRepository) Update(ctx context.Context, upd repository.FichaUpdate) error {
	args := m.Called(ctx, upd)
	return args.Error(0)
}

func (m *MockFichaRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockFichaRepository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRevisaoRepository мок для RevisaoRepository
type MockRevisaoRepository struct {
	mock.Mock
}

func (m *MockRevisaoRepository) ListByFicha(ctx context.Context, fichaID uuid.UUID) ([]entity.FichaRevisao, error) {
	args := m.Called(ctx, fichaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FichaRevisao), args.Error(1)
}
