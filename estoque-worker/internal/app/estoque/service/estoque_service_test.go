package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/estoque-worker/internal/app/estoque/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDedupTTL = 24 * time.Hour

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type estoqueMocks struct {
	insumos   *mocks.MockInsumoRepository
	alertas   *mocks.MockAlertaRepository
	publisher *mocks.MockAlertPublisher
}

func newEstoqueService() (*EstoqueService, estoqueMocks) {
	m := estoqueMocks{
		insumos:   new(mocks.MockInsumoRepository),
		alertas:   new(mocks.MockAlertaRepository),
		publisher: new(mocks.MockAlertPublisher),
	}
	svc := NewEstoqueService(m.insumos, m.alertas, m.publisher, testDedupTTL)
	svc.now = func() time.Time { return fixedNow }
	return svc, m
}

func insumoEvent(eventType, atual, minimo string) *entity.InsumoEvent {
	return &entity.InsumoEvent{
		EventType:     eventType,
		InsumoID:      uuid.New(),
		UserID:        uuid.New(),
		Nome:          "Polvilho azedo",
		EstoqueAtual:  decimal.RequireFromString(atual),
		EstoqueMinimo: decimal.RequireFromString(minimo),
		Timestamp:     fixedNow,
	}
}

func TestHandleInsumoEvent_LowStockPublishesAlert(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoUpdated, "1.5", "2")

	m.alertas.On("TryMark", mock.Anything, event.InsumoID, testDedupTTL).Return(true, nil)

	var published entity.EstoqueAlerta
	m.publisher.On("PublishMessage", mock.Anything, event.InsumoID.String(), mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &published))
		}).
		Return(nil)

	err := svc.HandleInsumoEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, entity.EventEstoqueBaixo, published.EventType)
	assert.Equal(t, event.InsumoID, published.InsumoID)
	assert.Equal(t, event.UserID, published.UserID)
	assert.Equal(t, "Polvilho azedo", published.Nome)
	assert.True(t, published.EstoqueAtual.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, published.DetectadoEm.Equal(fixedNow))
	m.alertas.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestHandleInsumoEvent_EqualToMinimumIsLow(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoCreated, "2.000", "2")

	m.alertas.On("TryMark", mock.Anything, event.InsumoID, testDedupTTL).Return(true, nil)
	m.publisher.On("PublishMessage", mock.Anything, event.InsumoID.String(), mock.Anything).Return(nil)

	require.NoError(t, svc.HandleInsumoEvent(context.Background(), event))
	m.publisher.AssertNumberOfCalls(t, "PublishMessage", 1)
}

func TestHandleInsumoEvent_AlreadyAlertedIsSuppressed(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoUpdated, "0", "5")

	m.alertas.On("TryMark", mock.Anything, event.InsumoID, testDedupTTL).Return(false, nil)

	require.NoError(t, svc.HandleInsumoEvent(context.Background(), event))
	m.publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleInsumoEvent_RecoveredStockClearsMark(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoUpdated, "10", "2")

	m.alertas.On("Clear", mock.Anything, event.InsumoID).Return(nil)

	require.NoError(t, svc.HandleInsumoEvent(context.Background(), event))
	m.alertas.AssertNotCalled(t, "TryMark", mock.Anything, mock.Anything, mock.Anything)
	m.alertas.AssertExpectations(t)
}

func TestHandleInsumoEvent_DeletedClearsMark(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoDeleted, "0", "2")

	m.alertas.On("Clear", mock.Anything, event.InsumoID).Return(nil)

	require.NoError(t, svc.HandleInsumoEvent(context.Background(), event))
	m.publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
	m.alertas.AssertExpectations(t)
}

func TestHandleInsumoEvent_PublishFailureReleasesMark(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoUpdated, "1", "2")

	m.alertas.On("TryMark", mock.Anything, event.InsumoID, testDedupTTL).Return(true, nil)
	m.publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	m.alertas.On("Clear", mock.Anything, event.InsumoID).Return(nil)

	err := svc.HandleInsumoEvent(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish alert")
	m.alertas.AssertExpectations(t)
}

func TestHandleInsumoEvent_RedisErrorIsReturned(t *testing.T) {
	svc, m := newEstoqueService()
	event := insumoEvent(entity.EventInsumoUpdated, "1", "2")

	m.alertas.On("TryMark", mock.Anything, event.InsumoID, testDedupTTL).Return(false, errors.New("redis down"))

	err := svc.HandleInsumoEvent(context.Background(), event)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidEvent)
}

func TestHandleInsumoEvent_InvalidEvents(t *testing.T) {
	svc, _ := newEstoqueService()

	noID := insumoEvent(entity.EventInsumoUpdated, "1", "2")
	noID.InsumoID = uuid.Nil

	unknown := insumoEvent("INSUMO_ARCHIVED", "1", "2")

	assert.ErrorIs(t, svc.HandleInsumoEvent(context.Background(), noID), ErrInvalidEvent)
	assert.ErrorIs(t, svc.HandleInsumoEvent(context.Background(), unknown), ErrInvalidEvent)
}

func TestScanEstoqueBaixo_AlertsEveryItem(t *testing.T) {
	svc, m := newEstoqueService()
	first := entity.Insumo{ID: uuid.New(), UserID: uuid.New(), Nome: "Leite", EstoqueAtual: decimal.Zero, EstoqueMinimo: decimal.NewFromInt(3)}
	second := entity.Insumo{ID: uuid.New(), UserID: uuid.New(), Nome: "Ovos", EstoqueAtual: decimal.NewFromInt(1), EstoqueMinimo: decimal.NewFromInt(12)}

	m.insumos.On("ListEstoqueBaixo", mock.Anything).Return([]entity.Insumo{first, second}, nil)
	m.alertas.On("TryMark", mock.Anything, first.ID, testDedupTTL).Return(true, nil)
	m.alertas.On("TryMark", mock.Anything, second.ID, testDedupTTL).Return(false, nil)
	m.publisher.On("PublishMessage", mock.Anything, first.ID.String(), mock.Anything).Return(nil)

	require.NoError(t, svc.ScanEstoqueBaixo(context.Background()))
	m.publisher.AssertNumberOfCalls(t, "PublishMessage", 1)
}

func TestScanEstoqueBaixo_ContinuesAfterFailure(t *testing.T) {
	svc, m := newEstoqueService()
	first := entity.Insumo{ID: uuid.New(), UserID: uuid.New(), Nome: "Leite"}
	second := entity.Insumo{ID: uuid.New(), UserID: uuid.New(), Nome: "Ovos"}

	m.insumos.On("ListEstoqueBaixo", mock.Anything).Return([]entity.Insumo{first, second}, nil)
	m.alertas.On("TryMark", mock.Anything, first.ID, testDedupTTL).Return(false, errors.New("redis timeout"))
	m.alertas.On("TryMark", mock.Anything, second.ID, testDedupTTL).Return(true, nil)
	m.publisher.On("PublishMessage", mock.Anything, second.ID.String(), mock.Anything).Return(nil)

	err := svc.ScanEstoqueBaixo(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis timeout")
	m.publisher.AssertNumberOfCalls(t, "PublishMessage", 1)
}

func TestScanEstoqueBaixo_RepositoryError(t *testing.T) {
	svc, m := newEstoqueService()
	m.insumos.On("ListEstoqueBaixo", mock.Anything).Return(nil, errors.New("db down"))

	err := svc.ScanEstoqueBaixo(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan low stock")
	m.alertas.AssertNotCalled(t, "TryMark", mock.Anything, mock.Anything, mock.Anything)
}
