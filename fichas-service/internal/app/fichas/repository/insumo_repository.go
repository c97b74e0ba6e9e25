package repository

import (
	"context"
	"errors"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type insumoRepository struct {
	db *gorm.DB
}

// NewInsumoRepository создает репозиторий сырья
func NewInsumoRepository(db *gorm.DB) InsumoRepository {
	return &insumoRepository{db: db}
}

func (r *insumoRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("Unidade").
		Preload("Fornecedor")
}

// List возвращает сырье пользователя с категорией, единицей и поставщиком
func (r *insumoRepository) List(ctx context.Context, userID uuid.UUID) (insumos []entity.Insumo, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "insumos")
	defer func() { timer.Done(err) }()

	insumos = []entity.Insumo{}
	err = r.withRelations(ctx).Where("user_id = ?", userID).Order("nome ASC").Find(&insumos).Error
	return insumos, err
}

// ListEstoqueBaixo - сырье, у которого остаток не выше минимума
func (r *insumoRepository) ListEstoqueBaixo(ctx context.Context, userID uuid.UUID) (insumos []entity.Insumo, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "insumos")
	defer func() { timer.Done(err) }()

	insumos = []entity.Insumo{}
	err = r.db.WithContext(ctx).
		Preload("Unidade").
		Where("user_id = ? AND estoque_atual <= estoque_minimo", userID).
		Order("nome ASC").
		Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (_ *entity.Insumo, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "insumos")
	defer func() { timer.Done(err) }()

	var insumo entity.Insumo
	err = r.withRelations(ctx).Where("id = ? AND user_id = ?", id, userID).First(&insumo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &insumo, nil
}

func (r *insumoRepository) Create(ctx context.Context, insumo *entity.Insumo) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "insumos")
	defer func() { timer.Done(err) }()

	if insumo.ID == uuid.Nil {
		insumo.ID = uuid.New()
	}
	err = r.db.WithContext(ctx).Omit("Categoria", "Unidade", "Fornecedor").Create(insumo).Error
	if err != nil {
		return mapPgError(err)
	}
	insumo.EstoqueBaixo = insumo.EmEstoqueBaixo()
	return nil
}

// Update заменяет все изменяемые поля сырья
func (r *insumoRepository) Update(ctx context.Context, insumo *entity.Insumo) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "insumos")
	defer func() { timer.Done(err) }()

	result := r.db.WithContext(ctx).Model(&entity.Insumo{}).
		Where("id = ? AND user_id = ?", insumo.ID, insumo.UserID).
		Updates(map[string]interface{}{
			"nome":                   insumo.Nome,
			"categoria_id":           insumo.CategoriaID,
			"unidade_id":             insumo.UnidadeID,
			"preco_por_unidade":      insumo.PrecoPorUnidade,
			"fornecedor_id":          insumo.FornecedorID,
			"estoque_atual":          insumo.EstoqueAtual,
			"estoque_minimo":         insumo.EstoqueMinimo,
			"condicao_armazenamento": insumo.CondicaoArmazenamento,
			"data_compra":            insumo.DataCompra,
		})
	if result.Error != nil {
		return mapPgError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	insumo.EstoqueBaixo = insumo.EmEstoqueBaixo()
	return nil
}

// Delete удаляет сырье, если оно не используется ни в одной ficha
func (r *insumoRepository) Delete(ctx context.Context, id, userID uuid.UUID) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpTx, "insumos")
	defer func() {
		timer.Done(err)
		metrics.RecordTransaction(serviceName, "insumo_delete", err)
	}()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// чужое сырье не должно отличаться от несуществующего
		var count int64
		if err := tx.Model(&entity.Insumo{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		var emUso int64
		if err := tx.Model(&entity.IngredienteFicha{}).Where("insumo_id = ?", id).Count(&emUso).Error; err != nil {
			return err
		}
		if emUso > 0 {
			return ErrInUse
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Insumo{})
		if result.Error != nil {
			err := mapPgError(result.Error)
			if errors.Is(err, ErrForeignKey) {
				return ErrInUse
			}
			return err
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountOwned считает сколько из ids принадлежит пользователю
func (r *insumoRepository) CountOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (count int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "insumos")
	defer func() { timer.Done(err) }()

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	err = r.db.WithContext(ctx).Model(&entity.Insumo{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Count(&count).Error
	return count, err
}

func (r *insumoRepository) Count(ctx context.Context, userID uuid.UUID) (count int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "insumos")
	defer func() { timer.Done(err) }()

	err = r.db.WithContext(ctx).Model(&entity.Insumo{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
