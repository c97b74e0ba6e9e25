package repository

import (
	"context"
	"fmt"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevisoesCollection - история ревизий, которую пишет estoque-worker
const RevisoesCollection = "ficha_revisoes"

type revisaoRepository struct {
	collection *mongo.Collection
}

// NewRevisaoRepository создает репозиторий чтения истории ревизий.
// Индексы создает writer (estoque-worker), здесь только чтение.
func NewRevisaoRepository(db *mongo.Database) RevisaoRepository {
	return &revisaoRepository{collection: db.Collection(RevisoesCollection)}
}

// ListByFicha возвращает ревизии ficha от новой к старой
func (r *revisaoRepository) ListByFicha(ctx context.Context, fichaID uuid.UUID) (revisoes []entity.FichaRevisao, err error) {
	timer := metrics.NewMongoTimer(serviceName, "find", RevisoesCollection)
	defer func() { timer.Done(err) }()

	filter := bson.M{"ficha_id": fichaID.String()}
	opts := options.Find().SetSort(bson.D{{Key: "versao", Value: -1}, {Key: "registrado_em", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find revisions: %w", err)
	}
	defer cursor.Close(ctx)

	revisoes = []entity.FichaRevisao{}
	if err = cursor.All(ctx, &revisoes); err != nil {
		return nil, fmt.Errorf("failed to decode revisions: %w", err)
	}
	return revisoes, nil
}
