package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventFichaCreated  = "FICHA_CREATED"
	EventFichaUpdated  = "FICHA_UPDATED"
	EventFichaDeleted  = "FICHA_DELETED"
	EventInsumoCreated = "INSUMO_CREATED"
	EventInsumoUpdated = "INSUMO_UPDATED"
	EventInsumoDeleted = "INSUMO_DELETED"
)

// FichaEvent - событие изменения ficha для Kafka.
// Ficha содержит полный снимок со связями, для FICHA_DELETED - состояние до удаления.
type FichaEvent struct {
	EventType string        `json:"event_type"`
	FichaID   uuid.UUID     `json:"ficha_id"`
	UserID    uuid.UUID     `json:"user_id"`
	Versao    int           `json:"versao"`
	Ficha     *FichaTecnica `json:"ficha,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// InsumoEvent - событие изменения склада, используется монитором остатков
type InsumoEvent struct {
	EventType     string          `json:"event_type"`
	InsumoID      uuid.UUID       `json:"insumo_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Nome          string          `json:"nome"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	Timestamp     time.Time       `json:"timestamp"`
}
