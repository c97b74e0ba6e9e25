package service

import (
	"context"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
)

// RevisaoServiceInterface - запись истории ревизий по событиям FICHA_*
type RevisaoServiceInterface interface {
	HandleFichaEvent(ctx context.Context, event *entity.FichaEvent) error
}

// EstoqueServiceInterface - монитор остатков: события INSUMO_* и периодический скан
type EstoqueServiceInterface interface {
	HandleInsumoEvent(ctx context.Context, event *entity.InsumoEvent) error
	ScanEstoqueBaixo(ctx context.Context) error
}

// AlertPublisher - публикация в топик алертов
type AlertPublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
}
