package repository

import (
	"context"
	"fmt"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/pkg/metrics"

	"gorm.io/gorm"
)

type insumoRepository struct {
	db *gorm.DB
}

func NewInsumoRepository(db *gorm.DB) InsumoRepository {
	return &insumoRepository{db: db}
}

func (r *insumoRepository) ListEstoqueBaixo(ctx context.Context) (insumos []entity.Insumo, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "insumos")
	defer func() { timer.Done(err) }()

	insumos = []entity.Insumo{}
	result := r.db.WithContext(ctx).
		Select("id", "nome", "estoque_atual", "estoque_minimo", "user_id").
		Where("estoque_atual <= estoque_minimo").
		Order("user_id, nome").
		Find(&insumos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list low-stock insumos: %w", result.Error)
	}

	return insumos, nil
}
