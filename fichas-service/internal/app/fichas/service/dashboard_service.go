package service

import (
	"context"
	"fmt"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DashboardService собирает сводку пользователя параллельными запросами
type DashboardService struct {
	fichas       repository.FichaRepository
	insumos      repository.InsumoRepository
	fornecedores repository.FornecedorRepository
}

func NewDashboardService(
	fichas repository.FichaRepository,
	insumos repository.InsumoRepository,
	fornecedores repository.FornecedorRepository,
) *DashboardService {
	return &DashboardService{fichas: fichas, insumos: insumos, fornecedores: fornecedores}
}

func (s *DashboardService) Resumo(ctx context.Context, userID uuid.UUID) (*entity.DashboardResumo, error) {
	resumo := &entity.DashboardResumo{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.fichas.Count(gctx, userID)
		resumo.TotalFichas = n
		return err
	})
	g.Go(func() error {
		n, err := s.insumos.Count(gctx, userID)
		resumo.TotalInsumos = n
		return err
	})
	g.Go(func() error {
		n, err := s.fornecedores.Count(gctx, userID)
		resumo.TotalFornecedores = n
		return err
	})
	g.Go(func() error {
		baixo, err := s.insumos.ListEstoqueBaixo(gctx, userID)
		resumo.InsumosEstoqueBaixo = baixo
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	if resumo.InsumosEstoqueBaixo == nil {
		resumo.InsumosEstoqueBaixo = []entity.Insumo{}
	}
	return resumo, nil
}
