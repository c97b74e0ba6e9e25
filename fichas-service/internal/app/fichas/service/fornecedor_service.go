package service

import (
	"context"
	"errors"
	"fmt"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"

	"github.com/google/uuid"
)

// FornecedorService - реестр поставщиков пользователя
type FornecedorService struct {
	repo repository.FornecedorRepository
}

func NewFornecedorService(repo repository.FornecedorRepository) *FornecedorService {
	return &FornecedorService{repo: repo}
}

func (s *FornecedorService) List(ctx context.Context, userID uuid.UUID) ([]entity.Fornecedor, error) {
	fornecedores, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fornecedores: %w", err)
	}
	return fornecedores, nil
}

func (s *FornecedorService) Create(ctx context.Context, userID uuid.UUID, req *entity.FornecedorRequest) (*entity.Fornecedor, error) {
	fornecedor := fornecedorFromRequest(uuid.New(), userID, req)
	if err := s.repo.Create(ctx, fornecedor); err != nil {
		return nil, falhaDeEscrita("create fornecedor", err)
	}
	return fornecedor, nil
}

// Update полностью заменяет поля и возвращает актуальную строку
func (s *FornecedorService) Update(ctx context.Context, id, userID uuid.UUID, req *entity.FornecedorRequest) (*entity.Fornecedor, error) {
	if err := s.repo.Update(ctx, fornecedorFromRequest(id, userID, req)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFornecedorNotFound
		}
		return nil, falhaDeEscrita("update fornecedor", err)
	}

	fornecedor, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFornecedorNotFound
		}
		return nil, fmt.Errorf("failed to reload fornecedor: %w", err)
	}
	return fornecedor, nil
}

// Delete отвязывает сырье и удаляет поставщика (одна транзакция в репозитории)
func (s *FornecedorService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFornecedorNotFound
		}
		return fmt.Errorf("failed to delete fornecedor: %w", err)
	}
	return nil
}

func fornecedorFromRequest(id, userID uuid.UUID, req *entity.FornecedorRequest) *entity.Fornecedor {
	req.Normalize()
	return &entity.Fornecedor{
		ID:       id,
		Nome:     req.Nome,
		Contato:  req.Contato,
		Telefone: req.Telefone,
		Email:    req.Email,
		Endereco: req.Endereco,
		UserID:   userID,
	}
}
