package handler

import (
	"net/http"
	"testing"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReferenciaHandler_UnidadesServedFromCache(t *testing.T) {
	env := setupTestEnv(t)
	env.referencias.On("ListUnidades", mock.Anything).Return([]entity.UnidadeMedida{
		{ID: uuid.New(), Nome: "Quilograma", Abreviacao: "kg", Tipo: "PESO"},
	}, nil).Once()

	first := env.do(http.MethodGet, "/unidades", nil)
	second := env.do(http.MethodGet, "/unidades", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	env.referencias.AssertNumberOfCalls(t, "ListUnidades", 1)
}

func TestReferenciaHandler_CreateUnidadeInvalidatesCache(t *testing.T) {
	env := setupTestEnv(t)
	env.redis.Set("unidades:all", "[]")
	env.referencias.On("CreateUnidade", mock.Anything, mock.MatchedBy(func(u *entity.UnidadeMedida) bool {
		return u.Abreviacao == "g" && u.Tipo == entity.TipoUnidadePadrao
	})).Return(nil)

	w := env.do(http.MethodPost, "/unidades", map[string]interface{}{"nome": "Grama", "abreviacao": "g"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, env.redis.Exists("unidades:all"))
}

func TestReferenciaHandler_CreateUnidadeValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/unidades", map[string]interface{}{"nome": "Grama"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nome e abreviação são obrigatórios", decodeError(t, w))
}

func TestReferenciaHandler_CategoriaReceita(t *testing.T) {
	env := setupTestEnv(t)
	env.referencias.On("CreateCategoriaReceita", mock.Anything, mock.MatchedBy(func(c *entity.CategoriaReceita) bool {
		return c.Nome == "Pães" && c.UserID == env.userID
	})).Return(nil)

	w := env.do(http.MethodPost, "/categorias-receitas", map[string]interface{}{"nome": "Pães"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/categorias-receitas", map[string]interface{}{"descricao": "sem nome"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nome é obrigatório", decodeError(t, w))
}
