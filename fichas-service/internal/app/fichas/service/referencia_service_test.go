package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository/mocks"
	"fichaspro/fichas-service/internal/app/fichas/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCachedReferenciaService(t *testing.T) (*ReferenciaService, *mocks.MockReferenciaRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := new(mocks.MockReferenciaRepository)
	return NewReferenciaService(repo, util.NewRedisClientFrom(client), 10*time.Minute), repo, mr
}

func TestListUnidades_ReadThroughCache(t *testing.T) {
	svc, repo, mr := newCachedReferenciaService(t)
	ctx := context.Background()

	unidades := []entity.UnidadeMedida{{ID: uuid.New(), Nome: "Litro", Abreviacao: "L", Tipo: "VOLUME"}}
	repo.On("ListUnidades", ctx).Return(unidades, nil).Once()

	first, err := svc.ListUnidades(ctx)
	require.NoError(t, err)
	second, err := svc.ListUnidades(ctx)
	require.NoError(t, err)

	assert.Equal(t, "L", first[0].Abreviacao)
	assert.Equal(t, "L", second[0].Abreviacao)
	assert.True(t, mr.Exists("unidades:all"))
	repo.AssertNumberOfCalls(t, "ListUnidades", 1)
}

func TestListUnidades_CacheDownFallsBackToDatabase(t *testing.T) {
	svc, repo, mr := newCachedReferenciaService(t)
	mr.Close()
	ctx := context.Background()

	repo.On("ListUnidades", ctx).Return([]entity.UnidadeMedida{{Nome: "Grama"}}, nil)

	unidades, err := svc.ListUnidades(ctx)

	require.NoError(t, err)
	assert.Len(t, unidades, 1)
}

func TestCreateUnidade_DefaultTipoAndInvalidatesCache(t *testing.T) {
	svc, repo, mr := newCachedReferenciaService(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("unidades:all", "[]"))

	repo.On("CreateUnidade", ctx, mock.AnythingOfType("*entity.UnidadeMedida")).Return(nil)

	unidade, err := svc.CreateUnidade(ctx, &entity.UnidadeRequest{Nome: "Pitada", Abreviacao: "pt"})

	require.NoError(t, err)
	assert.Equal(t, entity.TipoUnidadePadrao, unidade.Tipo)
	assert.False(t, mr.Exists("unidades:all"))
}

// список, прочитанный до CreateUnidade, не должен прятать новую единицу на весь TTL
func TestListUnidades_ConcurrentCreateDoesNotLeaveStaleCache(t *testing.T) {
	svc, repo, _ := newCachedReferenciaService(t)
	ctx := context.Background()

	antiga := []entity.UnidadeMedida{{ID: uuid.New(), Nome: "Grama", Abreviacao: "g"}}
	nova := append(antiga, entity.UnidadeMedida{ID: uuid.New(), Nome: "Pitada", Abreviacao: "pt"})

	repo.On("CreateUnidade", ctx, mock.AnythingOfType("*entity.UnidadeMedida")).Return(nil)
	repo.On("ListUnidades", ctx).
		Run(func(mock.Arguments) {
			_, err := svc.CreateUnidade(ctx, &entity.UnidadeRequest{Nome: "Pitada", Abreviacao: "pt"})
			require.NoError(t, err)
		}).
		Return(antiga, nil).Once()
	repo.On("ListUnidades", ctx).Return(nova, nil).Once()

	first, err := svc.ListUnidades(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svc.ListUnidades(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	repo.AssertNumberOfCalls(t, "ListUnidades", 2)
}

func TestCreateCategoriaReceita_OwnedByCaller(t *testing.T) {
	repo := new(mocks.MockReferenciaRepository)
	svc := NewReferenciaService(repo, nil, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("CreateCategoriaReceita", ctx, mock.AnythingOfType("*entity.CategoriaReceita")).Return(nil)

	categoria, err := svc.CreateCategoriaReceita(ctx, userID, &entity.CategoriaRequest{Nome: "  Pães  "})

	require.NoError(t, err)
	assert.Equal(t, userID, categoria.UserID)
	assert.Equal(t, "Pães", categoria.Nome)
}

func TestListCategoriasInsumos_Error(t *testing.T) {
	repo := new(mocks.MockReferenciaRepository)
	svc := NewReferenciaService(repo, nil, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("ListCategoriasInsumos", ctx, userID).Return(nil, errors.New("db down"))

	_, err := svc.ListCategoriasInsumos(ctx, userID)
	assert.Error(t, err)
}
