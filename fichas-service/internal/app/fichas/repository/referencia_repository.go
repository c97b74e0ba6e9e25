package repository

import (
	"context"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type referenciaRepository struct {
	db *gorm.DB
}

// NewReferenciaRepository создает репозиторий справочников:
// единицы измерения, категории рецептур и категории сырья
func NewReferenciaRepository(db *gorm.DB) ReferenciaRepository {
	return &referenciaRepository{db: db}
}

func (r *referenciaRepository) ListUnidades(ctx context.Context) (unidades []entity.UnidadeMedida, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "unidades_medida")
	defer func() { timer.Done(err) }()

	unidades = []entity.UnidadeMedida{}
	err = r.db.WithContext(ctx).Order("nome ASC").Find(&unidades).Error
	return unidades, err
}

func (r *referenciaRepository) CreateUnidade(ctx context.Context, unidade *entity.UnidadeMedida) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "unidades_medida")
	defer func() { timer.Done(err) }()

	if unidade.ID == uuid.Nil {
		unidade.ID = uuid.New()
	}
	return mapPgError(r.db.WithContext(ctx).Create(unidade).Error)
}

// CountUnidades считает сколько из переданных id существует
func (r *referenciaRepository) CountUnidades(ctx context.Context, ids []uuid.UUID) (count int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "unidades_medida")
	defer func() { timer.Done(err) }()

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	err = r.db.WithContext(ctx).Model(&entity.UnidadeMedida{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *referenciaRepository) ListCategoriasReceitas(ctx context.Context, userID uuid.UUID) (categorias []entity.CategoriaReceita, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categorias_receitas")
	defer func() { timer.Done(err) }()

	categorias = []entity.CategoriaReceita{}
	err = r.db.WithContext(ctx).Where("user_id = ?", userID).Order("nome ASC").Find(&categorias).Error
	return categorias, err
}

func (r *referenciaRepository) CreateCategoriaReceita(ctx context.Context, categoria *entity.CategoriaReceita) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "categorias_receitas")
	defer func() { timer.Done(err) }()

	if categoria.ID == uuid.Nil {
		categoria.ID = uuid.New()
	}
	return mapPgError(r.db.WithContext(ctx).Create(categoria).Error)
}

func (r *referenciaRepository) CategoriaReceitaExists(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return r.exists(ctx, &entity.CategoriaReceita{}, "categorias_receitas", id, userID)
}

func (r *referenciaRepository) ListCategoriasInsumos(ctx context.Context, userID uuid.UUID) (categorias []entity.CategoriaInsumo, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categorias_insumos")
	defer func() { timer.Done(err) }()

	categorias = []entity.CategoriaInsumo{}
	err = r.db.WithContext(ctx).Where("user_id = ?", userID).Order("nome ASC").Find(&categorias).Error
	return categorias, err
}

func (r *referenciaRepository) CreateCategoriaInsumo(ctx context.Context, categoria *entity.CategoriaInsumo) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "categorias_insumos")
	defer func() { timer.Done(err) }()

	if categoria.ID == uuid.Nil {
		categoria.ID = uuid.New()
	}
	return mapPgError(r.db.WithContext(ctx).Create(categoria).Error)
}

func (r *referenciaRepository) CategoriaInsumoExists(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return r.exists(ctx, &entity.CategoriaInsumo{}, "categorias_insumos", id, userID)
}

func (r *referenciaRepository) exists(ctx context.Context, model interface{}, table string, id, userID uuid.UUID) (ok bool, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, table)
	defer func() { timer.Done(err) }()

	var count int64
	err = r.db.WithContext(ctx).Model(model).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error
	return count > 0, err
}
