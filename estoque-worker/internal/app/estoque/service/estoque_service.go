package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/estoque-worker/internal/app/estoque/repository"
	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sourceEvent = "event"
	sourceScan  = "scan"
)

type EstoqueService struct {
	insumoRepo repository.InsumoRepository
	alertaRepo repository.AlertaRepository
	publisher  AlertPublisher
	dedupTTL   time.Duration
	now        func() time.Time
}

func NewEstoqueService(
	insumoRepo repository.InsumoRepository,
	alertaRepo repository.AlertaRepository,
	publisher AlertPublisher,
	dedupTTL time.Duration,
) *EstoqueService {
	return &EstoqueService{
		insumoRepo: insumoRepo,
		alertaRepo: alertaRepo,
		publisher:  publisher,
		dedupTTL:   dedupTTL,
		now:        time.Now,
	}
}

// HandleInsumoEvent реагирует на изменение остатка.
// Восстановленный остаток снимает отметку, чтобы следующее падение снова дало алерт.
func (s *EstoqueService) HandleInsumoEvent(ctx context.Context, event *entity.InsumoEvent) error {
	if event.InsumoID == uuid.Nil {
		return fmt.Errorf("%w: insumo_id is required", ErrInvalidEvent)
	}

	switch event.EventType {
	case entity.EventInsumoDeleted:
		return s.alertaRepo.Clear(ctx, event.InsumoID)

	case entity.EventInsumoCreated, entity.EventInsumoUpdated:
		if !event.EstoqueBaixo() {
			return s.alertaRepo.Clear(ctx, event.InsumoID)
		}
		return s.alert(ctx, sourceEvent, &entity.EstoqueAlerta{
			InsumoID:      event.InsumoID,
			UserID:        event.UserID,
			Nome:          event.Nome,
			EstoqueAtual:  event.EstoqueAtual,
			EstoqueMinimo: event.EstoqueMinimo,
		})

	default:
		return fmt.Errorf("%w: unexpected insumo event type %q", ErrInvalidEvent, event.EventType)
	}
}

// ScanEstoqueBaixo проходит по всем insumos с низким остатком.
// Ошибка одного алерта не прерывает скан, все ошибки возвращаются вместе.
func (s *EstoqueService) ScanEstoqueBaixo(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.ScanDuration)
	defer timer.ObserveDuration()

	insumos, err := s.insumoRepo.ListEstoqueBaixo(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan low stock: %w", err)
	}
	metrics.LowStockItems.Set(float64(len(insumos)))

	var errs []error
	for _, insumo := range insumos {
		alerta := &entity.EstoqueAlerta{
			InsumoID:      insumo.ID,
			UserID:        insumo.UserID,
			Nome:          insumo.Nome,
			EstoqueAtual:  insumo.EstoqueAtual,
			EstoqueMinimo: insumo.EstoqueMinimo,
		}
		if err := s.alert(ctx, sourceScan, alerta); err != nil {
			errs = append(errs, err)
		}
	}

	logger.Info().
		Int("low_stock", len(insumos)).
		Int("failed", len(errs)).
		Msg("Low-stock scan completed")

	return errors.Join(errs...)
}

// alert публикует ESTOQUE_BAIXO не чаще одного раза за dedupTTL на insumo
func (s *EstoqueService) alert(ctx context.Context, source string, alerta *entity.EstoqueAlerta) error {
	marked, err := s.alertaRepo.TryMark(ctx, alerta.InsumoID, s.dedupTTL)
	if err != nil {
		metrics.LowStockAlerts.WithLabelValues(source, "failed").Inc()
		return err
	}
	if !marked {
		metrics.LowStockAlerts.WithLabelValues(source, "suppressed").Inc()
		return nil
	}

	alerta.EventType = entity.EventEstoqueBaixo
	alerta.DetectadoEm = s.now().UTC()

	payload, err := json.Marshal(alerta)
	if err != nil {
		metrics.LowStockAlerts.WithLabelValues(source, "failed").Inc()
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, alerta.InsumoID.String(), payload); err != nil {
		metrics.LowStockAlerts.WithLabelValues(source, "failed").Inc()
		// без снятия отметки повторная доставка будет подавлена, и алерт потеряется
		if clearErr := s.alertaRepo.Clear(ctx, alerta.InsumoID); clearErr != nil {
			logger.Error().Err(clearErr).Str("insumo_id", alerta.InsumoID.String()).Msg("Failed to release alert mark")
		}
		return fmt.Errorf("failed to publish alert: %w", err)
	}

	metrics.LowStockAlerts.WithLabelValues(source, "emitted").Inc()
	logger.Info().
		Str("source", source).
		Str("insumo_id", alerta.InsumoID.String()).
		Str("user_id", alerta.UserID.String()).
		Str("estoque_atual", alerta.EstoqueAtual.String()).
		Str("estoque_minimo", alerta.EstoqueMinimo.String()).
		Msg("Low-stock alert emitted")
	return nil
}
