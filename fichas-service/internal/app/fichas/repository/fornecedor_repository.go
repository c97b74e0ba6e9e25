package repository

import (
	"context"
	"errors"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fornecedorRepository struct {
	db *gorm.DB
}

// NewFornecedorRepository создает репозиторий поставщиков
func NewFornecedorRepository(db *gorm.DB) FornecedorRepository {
	return &fornecedorRepository{db: db}
}

func (r *fornecedorRepository) List(ctx context.Context, userID uuid.UUID) (fornecedores []entity.Fornecedor, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fornecedores")
	defer func() { timer.Done(err) }()

	fornecedores = []entity.Fornecedor{}
	err = r.db.WithContext(ctx).Where("user_id = ?", userID).Order("nome ASC").Find(&fornecedores).Error
	return fornecedores, err
}

func (r *fornecedorRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (_ *entity.Fornecedor, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fornecedores")
	defer func() { timer.Done(err) }()

	var fornecedor entity.Fornecedor
	err = r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&fornecedor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fornecedor, nil
}

func (r *fornecedorRepository) Create(ctx context.Context, fornecedor *entity.Fornecedor) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "fornecedores")
	defer func() { timer.Done(err) }()

	if fornecedor.ID == uuid.Nil {
		fornecedor.ID = uuid.New()
	}
	return mapPgError(r.db.WithContext(ctx).Create(fornecedor).Error)
}

// Update полностью заменяет поля поставщика. Чужая или несуществующая запись - ErrNotFound.
func (r *fornecedorRepository) Update(ctx context.Context, fornecedor *entity.Fornecedor) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "fornecedores")
	defer func() { timer.Done(err) }()

	result := r.db.WithContext(ctx).Model(&entity.Fornecedor{}).
		Where("id = ? AND user_id = ?", fornecedor.ID, fornecedor.UserID).
		Updates(map[string]interface{}{
			"nome":     fornecedor.Nome,
			"contato":  fornecedor.Contato,
			"telefone": fornecedor.Telefone,
			"email":    fornecedor.Email,
			"endereco": fornecedor.Endereco,
		})
	if result.Error != nil {
		return mapPgError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete отвязывает сырье пользователя от поставщика и удаляет его в одной транзакции
func (r *fornecedorRepository) Delete(ctx context.Context, id, userID uuid.UUID) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpTx, "fornecedores")
	defer func() {
		timer.Done(err)
		metrics.RecordTransaction(serviceName, "fornecedor_delete", err)
	}()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Insumo{}).
			Where("fornecedor_id = ? AND user_id = ?", id, userID).
			Update("fornecedor_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Fornecedor{})
		if result.Error != nil {
			return mapPgError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *fornecedorRepository) Exists(ctx context.Context, id, userID uuid.UUID) (ok bool, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fornecedores")
	defer func() { timer.Done(err) }()

	var count int64
	err = r.db.WithContext(ctx).Model(&entity.Fornecedor{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error
	return count > 0, err
}

func (r *fornecedorRepository) Count(ctx context.Context, userID uuid.UUID) (count int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fornecedores")
	defer func() { timer.Done(err) }()

	err = r.db.WithContext(ctx).Model(&entity.Fornecedor{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
