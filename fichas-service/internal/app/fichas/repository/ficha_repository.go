package repository

import (
	"context"
	"errors"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type fichaRepository struct {
	db *gorm.DB
}

// NewFichaRepository создает репозиторий технологических карт
func NewFichaRepository(db *gorm.DB) FichaRepository {
	return &fichaRepository{db: db}
}

func (r *fichaRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("Ingredientes", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordem ASC")
		}).
		Preload("Ingredientes.Insumo").
		Preload("Ingredientes.Insumo.Unidade").
		Preload("Ingredientes.Unidade")
}

// List возвращает fichas пользователя с категорией и составом, по имени
func (r *fichaRepository) List(ctx context.Context, userID uuid.UUID) (fichas []entity.FichaTecnica, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fichas_tecnicas")
	defer func() { timer.Done(err) }()

	fichas = []entity.FichaTecnica{}
	err = r.withRelations(ctx).Where("user_id = ?", userID).Order("nome ASC").Find(&fichas).Error
	return fichas, err
}

func (r *fichaRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (_ *entity.FichaTecnica, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fichas_tecnicas")
	defer func() { timer.Done(err) }()

	var ficha entity.FichaTecnica
	err = r.withRelations(ctx).Where("id = ? AND user_id = ?", id, userID).First(&ficha).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ficha, nil
}

// Create записывает заголовок и строки состава в одной транзакции
func (r *fichaRepository) Create(ctx context.Context, ficha *entity.FichaTecnica) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpTx, "fichas_tecnicas")
	defer func() {
		timer.Done(err)
		metrics.RecordTransaction(serviceName, "ficha_create", err)
	}()

	if ficha.ID == uuid.Nil {
		ficha.ID = uuid.New()
	}
	if ficha.Versao == 0 {
		ficha.Versao = 1
	}
	prepararIngredientes(ficha.ID, ficha.Ingredientes)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ficha).Error; err != nil {
			return mapPgError(err)
		}
		if len(ficha.Ingredientes) == 0 {
			return nil
		}
		if err := tx.Omit(clause.Associations).Create(&ficha.Ingredientes).Error; err != nil {
			return mapPgError(err)
		}
		return nil
	})
}

// Update заменяет поля заголовка, увеличивает versao и при необходимости
// переписывает состав. Все в одной транзакции.
func (r *fichaRepository) Update(ctx context.Context, upd FichaUpdate) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpTx, "fichas_tecnicas")
	defer func() {
		timer.Done(err)
		metrics.RecordTransaction(serviceName, "ficha_update", err)
	}()

	campos := make(map[string]interface{}, len(upd.Campos)+1)
	for k, v := range upd.Campos {
		campos[k] = v
	}
	campos["versao"] = gorm.Expr("versao + 1")

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&entity.FichaTecnica{}).Where("id = ? AND user_id = ?", upd.ID, upd.UserID)
		if upd.VersaoEsperada != nil {
			q = q.Where("versao = ?", *upd.VersaoEsperada)
		}

		result := q.Updates(campos)
		if result.Error != nil {
			return mapPgError(result.Error)
		}
		if result.RowsAffected == 0 {
			return r.explicarUpdateVazio(tx, upd)
		}

		if !upd.SubstituirIngredientes {
			return nil
		}
		if err := tx.Where("ficha_id = ?", upd.ID).Delete(&entity.IngredienteFicha{}).Error; err != nil {
			return err
		}
		if len(upd.Ingredientes) == 0 {
			return nil
		}
		prepararIngredientes(upd.ID, upd.Ingredientes)
		if err := tx.Omit(clause.Associations).Create(&upd.Ingredientes).Error; err != nil {
			return mapPgError(err)
		}
		return nil
	})
}

// explicarUpdateVazio различает отсутствие ficha и устаревшую versao
func (r *fichaRepository) explicarUpdateVazio(tx *gorm.DB, upd FichaUpdate) error {
	if upd.VersaoEsperada == nil {
		return ErrNotFound
	}

	var atual entity.FichaTecnica
	err := tx.Select("id", "versao").Where("id = ? AND user_id = ?", upd.ID, upd.UserID).Take(&atual).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return &VersionConflictError{Atual: atual.Versao}
}

// Delete удаляет строки состава и заголовок. Чужая ficha - ErrNotFound.
func (r *fichaRepository) Delete(ctx context.Context, id, userID uuid.UUID) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpTx, "fichas_tecnicas")
	defer func() {
		timer.Done(err)
		metrics.RecordTransaction(serviceName, "ficha_delete", err)
	}()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.FichaTecnica{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		if err := tx.Where("ficha_id = ?", id).Delete(&entity.IngredienteFicha{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.FichaTecnica{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *fichaRepository) Count(ctx context.Context, userID uuid.UUID) (count int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "fichas_tecnicas")
	defer func() { timer.Done(err) }()

	err = r.db.WithContext(ctx).Model(&entity.FichaTecnica{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func prepararIngredientes(fichaID uuid.UUID, linhas []entity.IngredienteFicha) {
	for i := range linhas {
		if linhas[i].ID == uuid.Nil {
			linhas[i].ID = uuid.New()
		}
		linhas[i].FichaID = fichaID
		linhas[i].Ordem = i
	}
}
