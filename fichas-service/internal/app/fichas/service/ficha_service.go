package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"
	"fichaspro/fichas-service/internal/app/fichas/util"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
)

// FichaService - технологические карты и их состав
type FichaService struct {
	repo        repository.FichaRepository
	referencias repository.ReferenciaRepository
	insumos     repository.InsumoRepository
	revisoes    repository.RevisaoRepository
	renderer    FichaRenderer
	events      eventPublisher
}

func NewFichaService(
	repo repository.FichaRepository,
	referencias repository.ReferenciaRepository,
	insumos repository.InsumoRepository,
	revisoes repository.RevisaoRepository,
	renderer FichaRenderer,
	publisher util.MessagePublisher,
) *FichaService {
	return &FichaService{
		repo:        repo,
		referencias: referencias,
		insumos:     insumos,
		revisoes:    revisoes,
		renderer:    renderer,
		events:      eventPublisher{publisher: publisher},
	}
}

func (s *FichaService) List(ctx context.Context, userID uuid.UUID) ([]entity.FichaTecnica, error) {
	fichas, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fichas: %w", err)
	}
	return fichas, nil
}

func (s *FichaService) Get(ctx context.Context, id, userID uuid.UUID) (*entity.FichaTecnica, error) {
	ficha, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFichaNotFound
		}
		return nil, fmt.Errorf("failed to get ficha: %w", err)
	}
	return ficha, nil
}

// Create сохраняет заголовок и состав, versao = 1
func (s *FichaService) Create(ctx context.Context, userID uuid.UUID, req *entity.FichaRequest) (*entity.FichaTecnica, error) {
	nivel := entity.Basico
	if n := strings.TrimSpace(req.NivelDificuldade); n != "" {
		nivel = entity.NivelDificuldade(strings.ToUpper(n))
		if !nivel.Valid() {
			return nil, invalido(MsgNivelInvalido)
		}
	}

	if !limitePesoFinal.cabeNullable(req.PesoFinal.Nullable()) {
		return nil, invalido(MsgValorForaDoLimite)
	}

	categoriaID, err := s.validarCategoria(ctx, userID, req.CategoriaID)
	if err != nil {
		return nil, err
	}

	linhas, err := s.montarIngredientes(ctx, userID, req.Ingredientes)
	if err != nil {
		return nil, err
	}

	ficha := &entity.FichaTecnica{
		ID:               uuid.New(),
		Nome:             strings.TrimSpace(req.Nome),
		CategoriaID:      categoriaID,
		TempoPreparo:     req.TempoPreparo.Ptr(),
		TemperaturaForno: req.TemperaturaForno.Ptr(),
		ModoPreparo:      req.ModoPreparo,
		PesoFinal:        req.PesoFinal.Nullable(),
		Observacoes:      req.TextoObservacoes(),
		NivelDificuldade: nivel,
		Versao:           1,
		UserID:           userID,
		Ingredientes:     linhas,
	}

	if err := s.repo.Create(ctx, ficha); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, invalido(MsgReferenciaInvalida)
		}
		return nil, falhaDeEscrita("create ficha", err)
	}
	metrics.FichasWritten.WithLabelValues("created").Inc()
	metrics.FichaIngredientLines.Observe(float64(len(linhas)))

	created, err := s.Get(ctx, ficha.ID, userID)
	if err != nil {
		return nil, err
	}
	s.events.ficha(ctx, entity.EventFichaCreated, created)
	return created, nil
}

// Update заменяет поля заголовка и увеличивает versao на 1.
// pesoFinal, observacoes и nivelDificuldade остаются прежними, если их нет в запросе.
// Если прислана versao, обновление проходит только при совпадении с сохраненной.
func (s *FichaService) Update(ctx context.Context, id, userID uuid.UUID, req *entity.FichaRequest) (*entity.FichaTecnica, error) {
	if !limitePesoFinal.cabeNullable(req.PesoFinal.Nullable()) {
		return nil, invalido(MsgValorForaDoLimite)
	}

	categoriaID, err := s.validarCategoria(ctx, userID, req.CategoriaID)
	if err != nil {
		return nil, err
	}

	campos := map[string]interface{}{
		"nome":              strings.TrimSpace(req.Nome),
		"categoria_id":      categoriaID,
		"modo_preparo":      req.ModoPreparo,
		"tempo_preparo":     req.TempoPreparo.Ptr(),
		"temperatura_forno": req.TemperaturaForno.Ptr(),
	}
	if req.PesoFinal.Valid {
		campos["peso_final"] = req.PesoFinal.Nullable()
	}
	if obs := req.TextoObservacoes(); obs != nil {
		campos["observacoes"] = *obs
	}
	if n := strings.TrimSpace(req.NivelDificuldade); n != "" {
		nivel := entity.NivelDificuldade(strings.ToUpper(n))
		if !nivel.Valid() {
			return nil, invalido(MsgNivelInvalido)
		}
		campos["nivel_dificuldade"] = nivel
	}

	upd := repository.FichaUpdate{
		ID:     id,
		UserID: userID,
		Campos: campos,
	}
	if req.Versao.Valid {
		upd.VersaoEsperada = req.Versao.Ptr()
	}
	if req.Ingredientes != nil {
		linhas, err := s.montarIngredientes(ctx, userID, req.Ingredientes)
		if err != nil {
			return nil, err
		}
		upd.SubstituirIngredientes = true
		upd.Ingredientes = linhas
	}

	if err := s.repo.Update(ctx, upd); err != nil {
		var conflito *repository.VersionConflictError
		switch {
		case errors.As(err, &conflito):
			metrics.FichaVersionConflicts.Inc()
			return nil, &ConflitoVersaoError{Atual: conflito.Atual}
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrFichaNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return nil, invalido(MsgReferenciaInvalida)
		}
		return nil, falhaDeEscrita("update ficha", err)
	}
	metrics.FichasWritten.WithLabelValues("updated").Inc()
	if upd.SubstituirIngredientes {
		metrics.FichaIngredientLines.Observe(float64(len(upd.Ingredientes)))
	}

	updated, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.events.ficha(ctx, entity.EventFichaUpdated, updated)
	return updated, nil
}

// Delete удаляет ficha. Снимок до удаления уходит в событие FICHA_DELETED.
func (s *FichaService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	snapshot, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFichaNotFound
		}
		return fmt.Errorf("failed to delete ficha: %w", err)
	}
	metrics.FichasWritten.WithLabelValues("deleted").Inc()

	s.events.ficha(ctx, entity.EventFichaDeleted, snapshot)
	return nil
}

// Revisoes - история версий. Владение проверяется по PostgreSQL до чтения MongoDB.
func (s *FichaService) Revisoes(ctx context.Context, id, userID uuid.UUID) ([]entity.FichaRevisao, error) {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}

	revisoes, err := s.revisoes.ListByFicha(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisoes: %w", err)
	}
	return revisoes, nil
}

func (s *FichaService) ExportPDF(ctx context.Context, id, userID uuid.UUID) (*entity.FichaTecnica, []byte, error) {
	ficha, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := s.renderer.Render(ficha)
	if err != nil {
		metrics.FichaPDFsRendered.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("failed to render ficha pdf: %w", err)
	}
	metrics.FichaPDFsRendered.WithLabelValues("success").Inc()
	return ficha, pdf, nil
}

func (s *FichaService) validarCategoria(ctx context.Context, userID uuid.UUID, raw string) (uuid.UUID, error) {
	categoriaID, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalido(MsgCategoriaInvalida)
	}
	ok, err := s.referencias.CategoriaReceitaExists(ctx, categoriaID, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check categoria: %w", err)
	}
	if !ok {
		return uuid.Nil, invalido(MsgCategoriaInvalida)
	}
	return categoriaID, nil
}

// montarIngredientes отбрасывает неполные строки и проверяет, что сырье
// принадлежит пользователю, а единицы существуют. Порядок массива сохраняется.
func (s *FichaService) montarIngredientes(ctx context.Context, userID uuid.UUID, reqs []entity.IngredienteRequest) ([]entity.IngredienteFicha, error) {
	linhas := make([]entity.IngredienteFicha, 0, len(reqs))
	var insumoIDs, unidadeIDs []uuid.UUID

	for _, r := range reqs {
		if !r.Completo() {
			continue
		}

		insumoID, err := uuid.Parse(strings.TrimSpace(r.InsumoID))
		if err != nil {
			return nil, invalido(MsgInsumoInvalidoIngrediente)
		}

		linha := entity.IngredienteFicha{
			InsumoID:           insumoID,
			Quantidade:         r.Quantidade.Decimal,
			PorcentagemPadeiro: r.PorcentagemPadeiro.Nullable(),
		}
		if !limiteQuantidade.cabe(linha.Quantidade) || !limitePorcentagem.cabeNullable(linha.PorcentagemPadeiro) {
			return nil, invalido(MsgValorForaDoLimite)
		}

		if raw := strings.TrimSpace(r.UnidadeID); raw != "" {
			unidadeID, err := uuid.Parse(raw)
			if err != nil {
				return nil, invalido(MsgUnidadeInvalidaIngrediente)
			}
			linha.UnidadeID = &unidadeID
			unidadeIDs = append(unidadeIDs, unidadeID)
		}

		insumoIDs = append(insumoIDs, insumoID)
		linhas = append(linhas, linha)
	}

	if len(insumoIDs) > 0 {
		owned, err := s.insumos.CountOwned(ctx, userID, insumoIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check insumos: %w", err)
		}
		if owned != int64(countUnique(insumoIDs)) {
			return nil, invalido(MsgInsumoInvalidoIngrediente)
		}
	}

	if len(unidadeIDs) > 0 {
		found, err := s.referencias.CountUnidades(ctx, unidadeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check unidades: %w", err)
		}
		if found != int64(countUnique(unidadeIDs)) {
			return nil, invalido(MsgUnidadeInvalidaIngrediente)
		}
	}

	return linhas, nil
}

func countUnique(ids []uuid.UUID) int {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
