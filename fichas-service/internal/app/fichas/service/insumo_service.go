package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"
	"fichaspro/fichas-service/internal/app/fichas/util"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
)

const dataCompraLayout = "2006-01-02"

// InsumoService - склад сырья пользователя.
// Проверяет ссылки на категорию, единицу и поставщика перед записью.
type InsumoService struct {
	repo         repository.InsumoRepository
	referencias  repository.ReferenciaRepository
	fornecedores repository.FornecedorRepository
	events       eventPublisher
}

func NewInsumoService(
	repo repository.InsumoRepository,
	referencias repository.ReferenciaRepository,
	fornecedores repository.FornecedorRepository,
	publisher util.MessagePublisher,
) *InsumoService {
	return &InsumoService{
		repo:         repo,
		referencias:  referencias,
		fornecedores: fornecedores,
		events:       eventPublisher{publisher: publisher},
	}
}

func (s *InsumoService) List(ctx context.Context, userID uuid.UUID) ([]entity.Insumo, error) {
	insumos, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insumos: %w", err)
	}
	return insumos, nil
}

func (s *InsumoService) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Insumo, error) {
	insumo, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInsumoNotFound
		}
		return nil, fmt.Errorf("failed to get insumo: %w", err)
	}
	return insumo, nil
}

func (s *InsumoService) Create(ctx context.Context, userID uuid.UUID, req *entity.InsumoRequest) (*entity.Insumo, error) {
	insumo, err := s.montarInsumo(ctx, uuid.New(), userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, insumo); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, invalido(MsgReferenciaInvalida)
		}
		return nil, falhaDeEscrita("create insumo", err)
	}
	metrics.InsumosWritten.WithLabelValues("created").Inc()

	created, err := s.Get(ctx, insumo.ID, userID)
	if err != nil {
		return nil, err
	}
	s.events.insumo(ctx, entity.EventInsumoCreated, created)
	return created, nil
}

func (s *InsumoService) Update(ctx context.Context, id, userID uuid.UUID, req *entity.InsumoRequest) (*entity.Insumo, error) {
	insumo, err := s.montarInsumo(ctx, id, userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, insumo); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrInsumoNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return nil, invalido(MsgReferenciaInvalida)
		}
		return nil, falhaDeEscrita("update insumo", err)
	}
	metrics.InsumosWritten.WithLabelValues("updated").Inc()

	updated, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.events.insumo(ctx, entity.EventInsumoUpdated, updated)
	return updated, nil
}

// Delete запрещен, пока сырье используется в составе хотя бы одной ficha
func (s *InsumoService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrInsumoNotFound
		case errors.Is(err, repository.ErrInUse):
			return ErrInsumoEmUso
		}
		return fmt.Errorf("failed to delete insumo: %w", err)
	}
	metrics.InsumosWritten.WithLabelValues("deleted").Inc()

	s.events.insumo(ctx, entity.EventInsumoDeleted, &entity.Insumo{ID: id, UserID: userID})
	return nil
}

// montarInsumo разбирает тело запроса. Обязательные поля уже проверены validator'ом в handler.
func (s *InsumoService) montarInsumo(ctx context.Context, id, userID uuid.UUID, req *entity.InsumoRequest) (*entity.Insumo, error) {
	estoqueAtual := req.EstoqueAtual.OrZero()
	estoqueMinimo := req.EstoqueMinimo.OrZero()
	if estoqueAtual.IsNegative() || estoqueMinimo.IsNegative() {
		return nil, invalido(MsgEstoqueNegativo)
	}
	if !limiteEstoque.cabe(estoqueAtual) || !limiteEstoque.cabe(estoqueMinimo) || !limitePreco.cabe(req.PrecoPorUnidade.Decimal) {
		return nil, invalido(MsgValorForaDoLimite)
	}

	condicao := entity.AmbienteSeco
	if c := strings.TrimSpace(req.CondicaoArmazenamento); c != "" {
		condicao = entity.CondicaoArmazenamento(strings.ToUpper(c))
		if !condicao.Valid() {
			return nil, invalido(MsgCondicaoInvalida)
		}
	}

	dataCompra, err := parseDataCompra(req.DataCompra)
	if err != nil {
		return nil, invalido(MsgDataCompraInvalida)
	}

	categoriaID, err := uuid.Parse(strings.TrimSpace(req.CategoriaID))
	if err != nil {
		return nil, invalido(MsgCategoriaInvalida)
	}
	ok, err := s.referencias.CategoriaInsumoExists(ctx, categoriaID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check categoria: %w", err)
	}
	if !ok {
		return nil, invalido(MsgCategoriaInvalida)
	}

	unidadeID, err := uuid.Parse(strings.TrimSpace(req.UnidadeID))
	if err != nil {
		return nil, invalido(MsgUnidadeInvalida)
	}
	count, err := s.referencias.CountUnidades(ctx, []uuid.UUID{unidadeID})
	if err != nil {
		return nil, fmt.Errorf("failed to check unidade: %w", err)
	}
	if count != 1 {
		return nil, invalido(MsgUnidadeInvalida)
	}

	fornecedorID, err := entity.ParseOptionalUUID(req.FornecedorID)
	if err != nil {
		return nil, invalido(MsgFornecedorInvalido)
	}
	if fornecedorID != nil {
		ok, err := s.fornecedores.Exists(ctx, *fornecedorID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check fornecedor: %w", err)
		}
		if !ok {
			return nil, invalido(MsgFornecedorInvalido)
		}
	}

	return &entity.Insumo{
		ID:                    id,
		Nome:                  strings.TrimSpace(req.Nome),
		CategoriaID:           categoriaID,
		UnidadeID:             unidadeID,
		PrecoPorUnidade:       req.PrecoPorUnidade.Decimal,
		FornecedorID:          fornecedorID,
		EstoqueAtual:          estoqueAtual,
		EstoqueMinimo:         estoqueMinimo,
		CondicaoArmazenamento: condicao,
		DataCompra:            dataCompra,
		UserID:                userID,
	}, nil
}

// parseDataCompra принимает YYYY-MM-DD или RFC 3339, пустое значение - nil
func parseDataCompra(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*value)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(dataCompraLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}
