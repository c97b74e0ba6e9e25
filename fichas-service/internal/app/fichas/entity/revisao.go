package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FichaRevisao - снимок ficha на конкретной versao (коллекция ficha_revisoes).
// Пишет estoque-worker, здесь только чтение.
type FichaRevisao struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FichaID      string             `json:"fichaId" bson:"ficha_id"`
	UserID       string             `json:"userId" bson:"user_id"`
	Versao       int                `json:"versao" bson:"versao"`
	Evento       string             `json:"evento" bson:"evento"`
	Snapshot     bson.M             `json:"snapshot" bson:"snapshot"`
	RegistradoEm time.Time          `json:"registradoEm" bson:"registrado_em"`
}
