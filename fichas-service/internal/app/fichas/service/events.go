package service

import (
	"context"
	"encoding/json"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/util"
	"fichaspro/pkg/logger"
)

// publishTimeout ограничивает ожидание брокера внутри HTTP-запроса
const publishTimeout = 2 * time.Second

// eventPublisher отправляет события после commit. Ошибки только логируются:
// запись в БД уже состоялась.
type eventPublisher struct {
	publisher util.MessagePublisher
	timeout   time.Duration
}

func (p eventPublisher) ficha(ctx context.Context, eventType string, ficha *entity.FichaTecnica) {
	if p.publisher == nil || ficha == nil {
		return
	}
	p.publish(ctx, ficha.ID.String(), eventType, entity.FichaEvent{
		EventType: eventType,
		FichaID:   ficha.ID,
		UserID:    ficha.UserID,
		Versao:    ficha.Versao,
		Ficha:     ficha,
		Timestamp: time.Now().UTC(),
	})
}

func (p eventPublisher) insumo(ctx context.Context, eventType string, insumo *entity.Insumo) {
	if p.publisher == nil || insumo == nil {
		return
	}
	p.publish(ctx, insumo.ID.String(), eventType, entity.InsumoEvent{
		EventType:     eventType,
		InsumoID:      insumo.ID,
		UserID:        insumo.UserID,
		Nome:          insumo.Nome,
		EstoqueAtual:  insumo.EstoqueAtual,
		EstoqueMinimo: insumo.EstoqueMinimo,
		Timestamp:     time.Now().UTC(),
	})
}

func (p eventPublisher) publish(ctx context.Context, key, eventType string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event")
		return
	}

	timeout := p.timeout
	if timeout <= 0 {
		timeout = publishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("key", key).
			Msg("failed to publish event")
	}
}
