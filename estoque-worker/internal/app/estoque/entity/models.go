package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventFichaCreated  = "FICHA_CREATED"
	EventFichaUpdated  = "FICHA_UPDATED"
	EventFichaDeleted  = "FICHA_DELETED"
	EventInsumoCreated = "INSUMO_CREATED"
	EventInsumoUpdated = "INSUMO_UPDATED"
	EventInsumoDeleted = "INSUMO_DELETED"

	EventEstoqueBaixo = "ESTOQUE_BAIXO"
)

// Insumo - модель чтения таблицы insumos (схему ведет fichas-service)
type Insumo struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nome          string          `gorm:"type:varchar(200)"`
	EstoqueAtual  decimal.Decimal `gorm:"type:decimal(12,3)"`
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(12,3)"`
	UserID        uuid.UUID       `gorm:"type:uuid"`
}

func (Insumo) TableName() string {
	return "insumos"
}

// EventEnvelope - общая часть всех событий топика, по event_type выбирается обработчик
type EventEnvelope struct {
	EventType string `json:"event_type"`
}

// FichaEvent - снимок ficha остается сырым JSON, воркеру его структура не нужна
type FichaEvent struct {
	EventType string          `json:"event_type"`
	FichaID   uuid.UUID       `json:"ficha_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Versao    int             `json:"versao"`
	Ficha     json.RawMessage `json:"ficha,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type InsumoEvent struct {
	EventType     string          `json:"event_type"`
	InsumoID      uuid.UUID       `json:"insumo_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Nome          string          `json:"nome"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	Timestamp     time.Time       `json:"timestamp"`
}

// EstoqueBaixo - остаток на уровне минимума или ниже
func (e *InsumoEvent) EstoqueBaixo() bool {
	return e.EstoqueAtual.LessThanOrEqual(e.EstoqueMinimo)
}

// FichaRevisao - документ коллекции ficha_revisoes.
// Уникален по (ficha_id, versao, evento): FICHA_DELETED делит versao с последним изменением.
type FichaRevisao struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FichaID      string             `bson:"ficha_id"`
	UserID       string             `bson:"user_id"`
	Versao       int                `bson:"versao"`
	Evento       string             `bson:"evento"`
	Snapshot     bson.M             `bson:"snapshot"`
	RegistradoEm time.Time          `bson:"registrado_em"`
}

// EstoqueAlerta - сообщение топика estoque_alertas
type EstoqueAlerta struct {
	EventType     string          `json:"eventType"`
	InsumoID      uuid.UUID       `json:"insumoId"`
	UserID        uuid.UUID       `json:"userId"`
	Nome          string          `json:"nome"`
	EstoqueAtual  decimal.Decimal `json:"estoqueAtual"`
	EstoqueMinimo decimal.Decimal `json:"estoqueMinimo"`
	DetectadoEm   time.Time       `json:"detectadoEm"`
}

// AlertaKey - ключ дедупликации алерта в Redis
func AlertaKey(insumoID uuid.UUID) string {
	return "estoque:alerta:" + insumoID.String()
}
