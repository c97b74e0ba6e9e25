package service

import (
	"errors"
	"fmt"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrFichaNotFound      = errors.New("ficha not found")
	ErrInsumoNotFound     = errors.New("insumo not found")
	ErrFornecedorNotFound = errors.New("fornecedor not found")
	ErrInsumoEmUso        = errors.New("insumo is referenced by fichas")
	ErrConflitoVersao     = errors.New("ficha versao conflict")
)

// ValidationError - ошибка входных данных, Message уходит клиенту как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalido(message string) error {
	return &ValidationError{Message: message}
}

// ConflitoVersaoError несет текущую versao ficha для сообщения клиенту
type ConflitoVersaoError struct {
	Atual int
}

func (e *ConflitoVersaoError) Error() string {
	return fmt.Sprintf("ficha versao conflict, current versao %d", e.Atual)
}

func (e *ConflitoVersaoError) Is(target error) bool {
	return target == ErrConflitoVersao
}

const (
	MsgCategoriaInvalida          = "Categoria inválida"
	MsgUnidadeInvalida            = "Unidade inválida"
	MsgFornecedorInvalido         = "Fornecedor inválido"
	MsgEstoqueNegativo            = "Estoque não pode ser negativo"
	MsgCondicaoInvalida           = "Condição de armazenamento inválida"
	MsgDataCompraInvalida         = "Data de compra inválida"
	MsgNivelInvalido              = "Nível de dificuldade inválido"
	MsgInsumoInvalidoIngrediente  = "Insumo inválido na lista de ingredientes"
	MsgUnidadeInvalidaIngrediente = "Unidade inválida na lista de ingredientes"
	MsgReferenciaInvalida         = "Referência inválida"
	MsgValorForaDoLimite          = "Valor fora do limite permitido"
)
