package repository

import (
	"context"
	"fmt"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RevisoesCollection = "ficha_revisoes"

type revisaoRepository struct {
	collection *mongo.Collection
}

func NewRevisaoRepository(db *mongo.Database) RevisaoRepository {
	return &revisaoRepository{collection: db.Collection(RevisoesCollection)}
}

// EnsureIndexes создает уникальный индекс ревизии и индекс для выборки истории
func (r *revisaoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "ficha_id", Value: 1},
				{Key: "versao", Value: 1},
				{Key: "evento", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_ficha_versao_evento"),
		},
		{
			Keys: bson.D{
				{Key: "ficha_id", Value: 1},
				{Key: "versao", Value: -1},
				{Key: "registrado_em", Value: -1},
			},
			Options: options.Index().SetName("ficha_historico"),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create revision indexes: %w", err)
	}
	return nil
}

func (r *revisaoRepository) Upsert(ctx context.Context, revisao *entity.FichaRevisao) (inserted bool, err error) {
	timer := metrics.NewMongoTimer(serviceName, "upsert", RevisoesCollection)
	defer func() { timer.Done(err) }()

	filter := bson.M{
		"ficha_id": revisao.FichaID,
		"versao":   revisao.Versao,
		"evento":   revisao.Evento,
	}
	update := bson.M{"$setOnInsert": bson.M{
		"ficha_id":      revisao.FichaID,
		"user_id":       revisao.UserID,
		"versao":        revisao.Versao,
		"evento":        revisao.Evento,
		"snapshot":      revisao.Snapshot,
		"registrado_em": revisao.RegistradoEm,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// параллельный upsert того же ключа: документ уже есть
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to upsert revision: %w", err)
	}

	return result.UpsertedCount > 0, nil
}
