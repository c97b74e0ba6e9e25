package service

import (
	"context"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/google/uuid"
)

type ReferenciaServiceInterface interface {
	ListUnidades(ctx context.Context) ([]entity.UnidadeMedida, error)
	CreateUnidade(ctx context.Context, req *entity.UnidadeRequest) (*entity.UnidadeMedida, error)
	ListCategoriasReceitas(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaReceita, error)
	CreateCategoriaReceita(ctx context.Context, userID uuid.UUID, req *entity.CategoriaRequest) (*entity.CategoriaReceita, error)
	ListCategoriasInsumos(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaInsumo, error)
	CreateCategoriaInsumo(ctx context.Context, userID uuid.UUID, req *entity.CategoriaRequest) (*entity.CategoriaInsumo, error)
}

type FornecedorServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Fornecedor, error)
	Create(ctx context.Context, userID uuid.UUID, req *entity.FornecedorRequest) (*entity.Fornecedor, error)
	Update(ctx context.Context, id, userID uuid.UUID, req *entity.FornecedorRequest) (*entity.Fornecedor, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type InsumoServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Insumo, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*entity.Insumo, error)
	Create(ctx context.Context, userID uuid.UUID, req *entity.InsumoRequest) (*entity.Insumo, error)
	Update(ctx context.Context, id, userID uuid.UUID, req *entity.InsumoRequest) (*entity.Insumo, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type FichaServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.FichaTecnica, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*entity.FichaTecnica, error)
	Create(ctx context.Context, userID uuid.UUID, req *entity.FichaRequest) (*entity.FichaTecnica, error)
	Update(ctx context.Context, id, userID uuid.UUID, req *entity.FichaRequest) (*entity.FichaTecnica, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Revisoes(ctx context.Context, id, userID uuid.UUID) ([]entity.FichaRevisao, error)
	ExportPDF(ctx context.Context, id, userID uuid.UUID) (*entity.FichaTecnica, []byte, error)
}

type DashboardServiceInterface interface {
	Resumo(ctx context.Context, userID uuid.UUID) (*entity.DashboardResumo, error)
}

// FichaRenderer - печатная форма ficha
type FichaRenderer interface {
	Render(ficha *entity.FichaTecnica) ([]byte, error)
}
