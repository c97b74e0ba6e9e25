package repository

import (
	"context"
	"errors"
	"fmt"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const serviceName = "fichas-service"

var (
	ErrNotFound        = errors.New("record not found")
	ErrInUse           = errors.New("record is referenced by other rows")
	ErrForeignKey      = errors.New("foreign key violation")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrVersionConflict = errors.New("version conflict")
	ErrValueOutOfRange = errors.New("value exceeds column limits")
)

// VersionConflictError - UPDATE с versao не нашел строку, хотя ficha существует
type VersionConflictError struct {
	Atual int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict: current versao is %d", e.Atual)
}

func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}

type ReferenciaRepository interface {
	ListUnidades(ctx context.Context) ([]entity.UnidadeMedida, error)
	CreateUnidade(ctx context.Context, unidade *entity.UnidadeMedida) error
	CountUnidades(ctx context.Context, ids []uuid.UUID) (int64, error)

	ListCategoriasReceitas(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaReceita, error)
	CreateCategoriaReceita(ctx context.Context, categoria *entity.CategoriaReceita) error
	CategoriaReceitaExists(ctx context.Context, id, userID uuid.UUID) (bool, error)

	ListCategoriasInsumos(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaInsumo, error)
	CreateCategoriaInsumo(ctx context.Context, categoria *entity.CategoriaInsumo) error
	CategoriaInsumoExists(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type FornecedorRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Fornecedor, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Fornecedor, error)
	Create(ctx context.Context, fornecedor *entity.Fornecedor) error
	Update(ctx context.Context, fornecedor *entity.Fornecedor) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Exists(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
}

type InsumoRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Insumo, error)
	ListEstoqueBaixo(ctx context.Context, userID uuid.UUID) ([]entity.Insumo, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Insumo, error)
	Create(ctx context.Context, insumo *entity.Insumo) error
	Update(ctx context.Context, insumo *entity.Insumo) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	CountOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
}

// FichaUpdate - полная замена скалярных полей ficha.
// Campos содержит только те колонки, которые нужно записать.
type FichaUpdate struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Campos                 map[string]interface{}
	VersaoEsperada         *int
	SubstituirIngredientes bool
	Ingredientes           []entity.IngredienteFicha
}

type FichaRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.FichaTecnica, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.FichaTecnica, error)
	Create(ctx context.Context, ficha *entity.FichaTecnica) error
	Update(ctx context.Context, upd FichaUpdate) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
}

type RevisaoRepository interface {
	ListByFicha(ctx context.Context, fichaID uuid.UUID) ([]entity.FichaRevisao, error)
}

// mapPgError переводит коды PostgreSQL в ошибки репозитория
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.ConstraintName)
		case "22001", "22003": // string_data_right_truncation, numeric_value_out_of_range
			return fmt.Errorf("%w: %s", ErrValueOutOfRange, pgErr.Message)
		}
	}
	return err
}

// uniqueIDs убирает повторы, чтобы COUNT сравнивался с числом разных id
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
