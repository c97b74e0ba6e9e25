package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/estoque-worker/internal/app/estoque/repository"
	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type RevisaoService struct {
	revisaoRepo repository.RevisaoRepository
	now         func() time.Time
}

func NewRevisaoService(revisaoRepo repository.RevisaoRepository) *RevisaoService {
	return &RevisaoService{revisaoRepo: revisaoRepo, now: time.Now}
}

// HandleFichaEvent сохраняет снимок ficha.
// FICHA_DELETED пишется отдельной финальной ревизией с той же versao.
func (s *RevisaoService) HandleFichaEvent(ctx context.Context, event *entity.FichaEvent) error {
	switch event.EventType {
	case entity.EventFichaCreated, entity.EventFichaUpdated, entity.EventFichaDeleted:
	default:
		return fmt.Errorf("%w: unexpected ficha event type %q", ErrInvalidEvent, event.EventType)
	}
	if event.FichaID == uuid.Nil || event.Versao < 1 {
		return fmt.Errorf("%w: ficha_id and versao are required", ErrInvalidEvent)
	}

	snapshot, err := decodeSnapshot(event.Ficha)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	registradoEm := event.Timestamp
	if registradoEm.IsZero() {
		registradoEm = s.now()
	}

	revisao := &entity.FichaRevisao{
		FichaID:      event.FichaID.String(),
		UserID:       event.UserID.String(),
		Versao:       event.Versao,
		Evento:       event.EventType,
		Snapshot:     snapshot,
		RegistradoEm: registradoEm.UTC(),
	}

	inserted, err := s.revisaoRepo.Upsert(ctx, revisao)
	if err != nil {
		return fmt.Errorf("failed to store revision: %w", err)
	}

	if !inserted {
		logger.Debug().
			Str("ficha_id", revisao.FichaID).
			Int("versao", revisao.Versao).
			Str("evento", revisao.Evento).
			Msg("Revision already stored, skipping redelivery")
		return nil
	}

	metrics.RevisionsStored.WithLabelValues(event.EventType).Inc()
	logger.Info().
		Str("ficha_id", revisao.FichaID).
		Int("versao", revisao.Versao).
		Str("evento", revisao.Evento).
		Msg("Revision stored")
	return nil
}

// decodeSnapshot переводит JSON снимка в документ MongoDB, отсутствующий снимок - пустой документ
func decodeSnapshot(raw json.RawMessage) (bson.M, error) {
	snapshot := bson.M{}
	if len(raw) == 0 || string(raw) == "null" {
		return snapshot, nil
	}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode ficha snapshot: %w", err)
	}
	return snapshot, nil
}
