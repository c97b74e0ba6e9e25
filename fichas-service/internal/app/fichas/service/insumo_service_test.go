package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"
	"fichaspro/fichas-service/internal/app/fichas/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type insumoFixture struct {
	insumos      *mocks.MockInsumoRepository
	referencias  *mocks.MockReferenciaRepository
	fornecedores *mocks.MockFornecedorRepository
	publisher    *recordingPublisher
	service      *InsumoService
}

func newInsumoFixture() *insumoFixture {
	f := &insumoFixture{
		insumos:      new(mocks.MockInsumoRepository),
		referencias:  new(mocks.MockReferenciaRepository),
		fornecedores: new(mocks.MockFornecedorRepository),
		publisher:    &recordingPublisher{},
	}
	f.service = NewInsumoService(f.insumos, f.referencias, f.fornecedores, f.publisher)
	return f
}

func validInsumoRequest(categoriaID, unidadeID uuid.UUID) *entity.InsumoRequest {
	return &entity.InsumoRequest{
		Nome:            "Farinha de trigo",
		CategoriaID:     categoriaID.String(),
		UnidadeID:       unidadeID.String(),
		PrecoPorUnidade: entity.NewDecimalFlex("0"),
	}
}

func (f *insumoFixture) expectReferences(ctx context.Context, userID, categoriaID, unidadeID uuid.UUID) {
	f.referencias.On("CategoriaInsumoExists", ctx, categoriaID, userID).Return(true, nil)
	f.referencias.On("CountUnidades", ctx, []uuid.UUID{unidadeID}).Return(int64(1), nil)
}

func TestInsumoCreate_Defaults(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	userID, categoriaID, unidadeID := uuid.New(), uuid.New(), uuid.New()
	f.expectReferences(ctx, userID, categoriaID, unidadeID)

	saved := &entity.Insumo{}
	f.insumos.On("Create", ctx, mock.AnythingOfType("*entity.Insumo")).
		Run(func(args mock.Arguments) { *saved = *args.Get(1).(*entity.Insumo) }).
		Return(nil)
	f.insumos.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID"), userID).Return(saved, nil)

	insumo, err := f.service.Create(ctx, userID, validInsumoRequest(categoriaID, unidadeID))

	require.NoError(t, err)
	assert.Equal(t, entity.AmbienteSeco, insumo.CondicaoArmazenamento)
	assert.True(t, insumo.EstoqueAtual.Equal(decimal.Zero))
	assert.True(t, insumo.EstoqueMinimo.Equal(decimal.Zero))
	assert.True(t, insumo.PrecoPorUnidade.Equal(decimal.Zero))
	assert.Nil(t, insumo.FornecedorID)
	assert.Nil(t, insumo.DataCompra)

	require.Len(t, f.publisher.messages, 1)
	var event entity.InsumoEvent
	require.NoError(t, json.Unmarshal(f.publisher.messages[0], &event))
	assert.Equal(t, entity.EventInsumoCreated, event.EventType)
}

func TestInsumoCreate_ParsesDataCompraAndFornecedor(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	userID, categoriaID, unidadeID, fornecedorID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	f.expectReferences(ctx, userID, categoriaID, unidadeID)
	f.fornecedores.On("Exists", ctx, fornecedorID, userID).Return(true, nil)

	saved := &entity.Insumo{}
	f.insumos.On("Create", ctx, mock.AnythingOfType("*entity.Insumo")).
		Run(func(args mock.Arguments) { *saved = *args.Get(1).(*entity.Insumo) }).
		Return(nil)
	f.insumos.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID"), userID).Return(saved, nil)

	req := validInsumoRequest(categoriaID, unidadeID)
	req.FornecedorID = strPtr(fornecedorID.String())
	req.DataCompra = strPtr("2024-03-15T10:30:00Z")
	req.CondicaoArmazenamento = "refrigerado"
	req.EstoqueAtual = entity.NewDecimalFlex("2")
	req.EstoqueMinimo = entity.NewDecimalFlex("5")

	insumo, err := f.service.Create(ctx, userID, req)

	require.NoError(t, err)
	require.NotNil(t, insumo.FornecedorID)
	assert.Equal(t, fornecedorID, *insumo.FornecedorID)
	require.NotNil(t, insumo.DataCompra)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *insumo.DataCompra)
	assert.Equal(t, entity.Refrigerado, insumo.CondicaoArmazenamento)
}

func TestInsumoCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *entity.InsumoRequest)
		message string
	}{
		{"negative stock", func(r *entity.InsumoRequest) { r.EstoqueAtual = entity.NewDecimalFlex("-1") }, MsgEstoqueNegativo},
		{"negative minimum", func(r *entity.InsumoRequest) { r.EstoqueMinimo = entity.NewDecimalFlex("-0.5") }, MsgEstoqueNegativo},
		{"unknown storage", func(r *entity.InsumoRequest) { r.CondicaoArmazenamento = "QUENTE" }, MsgCondicaoInvalida},
		{"bad date", func(r *entity.InsumoRequest) { r.DataCompra = strPtr("15/03/2024") }, MsgDataCompraInvalida},
		{"bad categoria id", func(r *entity.InsumoRequest) { r.CategoriaID = "x" }, MsgCategoriaInvalida},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInsumoFixture()
			req := validInsumoRequest(uuid.New(), uuid.New())
			tt.mutate(req)

			_, err := f.service.Create(context.Background(), uuid.New(), req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Message)
			f.insumos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestInsumoCreate_ForeignFornecedor(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	userID, categoriaID, unidadeID, fornecedorID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	f.expectReferences(ctx, userID, categoriaID, unidadeID)
	f.fornecedores.On("Exists", ctx, fornecedorID, userID).Return(false, nil)

	req := validInsumoRequest(categoriaID, unidadeID)
	req.FornecedorID = strPtr(fornecedorID.String())

	_, err := f.service.Create(ctx, userID, req)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgFornecedorInvalido, verr.Message)
}

func TestInsumoCreate_UnknownUnidade(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	userID, categoriaID, unidadeID := uuid.New(), uuid.New(), uuid.New()
	f.referencias.On("CategoriaInsumoExists", ctx, categoriaID, userID).Return(true, nil)
	f.referencias.On("CountUnidades", ctx, []uuid.UUID{unidadeID}).Return(int64(0), nil)

	_, err := f.service.Create(ctx, userID, validInsumoRequest(categoriaID, unidadeID))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgUnidadeInvalida, verr.Message)
}

func TestInsumoUpdate_NotFound(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	id, userID, categoriaID, unidadeID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	f.expectReferences(ctx, userID, categoriaID, unidadeID)
	f.insumos.On("Update", ctx, mock.AnythingOfType("*entity.Insumo")).Return(repository.ErrNotFound)

	_, err := f.service.Update(ctx, id, userID, validInsumoRequest(categoriaID, unidadeID))

	assert.ErrorIs(t, err, ErrInsumoNotFound)
	assert.Empty(t, f.publisher.messages)
}

func TestInsumoDelete(t *testing.T) {
	t.Run("in use", func(t *testing.T) {
		f := newInsumoFixture()
		ctx := context.Background()
		id, userID := uuid.New(), uuid.New()
		f.insumos.On("Delete", ctx, id, userID).Return(repository.ErrInUse)

		assert.ErrorIs(t, f.service.Delete(ctx, id, userID), ErrInsumoEmUso)
		assert.Empty(t, f.publisher.messages)
	})

	t.Run("success publishes event", func(t *testing.T) {
		f := newInsumoFixture()
		ctx := context.Background()
		id, userID := uuid.New(), uuid.New()
		f.insumos.On("Delete", ctx, id, userID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, id, userID))

		require.Len(t, f.publisher.messages, 1)
		var event entity.InsumoEvent
		require.NoError(t, json.Unmarshal(f.publisher.messages[0], &event))
		assert.Equal(t, entity.EventInsumoDeleted, event.EventType)
		assert.Equal(t, id, event.InsumoID)
	})
}

func TestParseDataCompra(t *testing.T) {
	got, err := parseDataCompra(strPtr("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDataCompra(strPtr("  "))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDataCompra(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDataCompra(strPtr("ontem"))
	assert.Error(t, err)
}

func TestInsumoCreate_ColumnOverflowIsValidationError(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	userID, categoriaID, unidadeID := uuid.New(), uuid.New(), uuid.New()
	f.expectReferences(ctx, userID, categoriaID, unidadeID)
	f.insumos.On("Create", ctx, mock.AnythingOfType("*entity.Insumo")).
		Return(fmt.Errorf("%w: value too long", repository.ErrValueOutOfRange))

	_, err := f.service.Create(ctx, userID, validInsumoRequest(categoriaID, unidadeID))

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, MsgValorForaDoLimite, validation.Message)
	assert.Empty(t, f.publisher.messages)
}

func TestInsumoCreate_StockBeyondNumericRange(t *testing.T) {
	f := newInsumoFixture()
	ctx := context.Background()
	req := validInsumoRequest(uuid.New(), uuid.New())
	req.EstoqueAtual = entity.NewDecimalFlex("1000000000")

	_, err := f.service.Create(ctx, uuid.New(), req)

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, MsgValorForaDoLimite, validation.Message)
	f.insumos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
