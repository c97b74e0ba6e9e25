package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"
	"fichaspro/fichas-service/internal/app/fichas/util"
	"fichaspro/pkg/logger"

	"github.com/google/uuid"
)

// ReferenciaService - справочники: единицы измерения и две таксономии категорий
type ReferenciaService struct {
	repo     repository.ReferenciaRepository
	cache    util.UnidadesCache
	cacheTTL time.Duration
}

// NewReferenciaService создает сервис справочников. cache может быть nil.
func NewReferenciaService(repo repository.ReferenciaRepository, cache util.UnidadesCache, cacheTTL time.Duration) *ReferenciaService {
	return &ReferenciaService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// ListUnidades читает единицы через кеш Redis, при любой проблеме с кешем идет в БД
func (s *ReferenciaService) ListUnidades(ctx context.Context) ([]entity.UnidadeMedida, error) {
	// без известного поколения список в кеш не пишем
	cacheable := false
	var geracao int64
	if s.cache != nil {
		unidades, g, found, err := s.cache.GetUnidades(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("unidades cache read failed")
		} else if found {
			return unidades, nil
		} else {
			cacheable, geracao = true, g
		}
	}

	unidades, err := s.repo.ListUnidades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unidades: %w", err)
	}

	if cacheable {
		if err := s.cache.SetUnidades(ctx, geracao, unidades, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache unidades")
		}
	}

	return unidades, nil
}

func (s *ReferenciaService) CreateUnidade(ctx context.Context, req *entity.UnidadeRequest) (*entity.UnidadeMedida, error) {
	tipo := strings.TrimSpace(req.Tipo)
	if tipo == "" {
		tipo = entity.TipoUnidadePadrao
	}

	unidade := &entity.UnidadeMedida{
		ID:         uuid.New(),
		Nome:       strings.TrimSpace(req.Nome),
		Abreviacao: strings.TrimSpace(req.Abreviacao),
		Tipo:       tipo,
	}

	if err := s.repo.CreateUnidade(ctx, unidade); err != nil {
		return nil, falhaDeEscrita("create unidade", err)
	}

	if s.cache != nil {
		if err := s.cache.DeleteUnidades(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate unidades cache")
		}
	}

	return unidade, nil
}

func (s *ReferenciaService) ListCategoriasReceitas(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaReceita, error) {
	categorias, err := s.repo.ListCategoriasReceitas(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categorias receitas: %w", err)
	}
	return categorias, nil
}

func (s *ReferenciaService) CreateCategoriaReceita(ctx context.Context, userID uuid.UUID, req *entity.CategoriaRequest) (*entity.CategoriaReceita, error) {
	categoria := &entity.CategoriaReceita{
		ID:        uuid.New(),
		Nome:      strings.TrimSpace(req.Nome),
		Descricao: req.Descricao,
		UserID:    userID,
	}
	if err := s.repo.CreateCategoriaReceita(ctx, categoria); err != nil {
		return nil, falhaDeEscrita("create categoria receita", err)
	}
	return categoria, nil
}

func (s *ReferenciaService) ListCategoriasInsumos(ctx context.Context, userID uuid.UUID) ([]entity.CategoriaInsumo, error) {
	categorias, err := s.repo.ListCategoriasInsumos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categorias insumos: %w", err)
	}
	return categorias, nil
}

func (s *ReferenciaService) CreateCategoriaInsumo(ctx context.Context, userID uuid.UUID, req *entity.CategoriaRequest) (*entity.CategoriaInsumo, error) {
	categoria := &entity.CategoriaInsumo{
		ID:        uuid.New(),
		Nome:      strings.TrimSpace(req.Nome),
		Descricao: req.Descricao,
		UserID:    userID,
	}
	if err := s.repo.CreateCategoriaInsumo(ctx, categoria); err != nil {
		return nil, falhaDeEscrita("create categoria insumo", err)
	}
	return categoria, nil
}
