package handler

import (
	"net/http"
	"testing"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFornecedorHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{"blank name", map[string]interface{}{"nome": "   "}, "Nome é obrigatório"},
		{"bad email", map[string]interface{}{"nome": "Moinho", "email": "not-an-email"}, "E-mail inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)

			w := env.do(http.MethodPost, "/fornecedores", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
		})
	}
}

func TestFornecedorHandler_CreateBlankEmailIsNull(t *testing.T) {
	env := setupTestEnv(t)
	env.fornecedores.On("Create", mock.Anything, mock.MatchedBy(func(f *entity.Fornecedor) bool {
		return f.Nome == "Moinho Sul" && f.Email == nil && f.UserID == env.userID
	})).Return(nil)

	w := env.do(http.MethodPost, "/fornecedores", map[string]interface{}{
		"nome":  "  Moinho Sul ",
		"email": "",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	env.fornecedores.AssertExpectations(t)
}

func TestFornecedorHandler_UpdateNotFound(t *testing.T) {
	env := setupTestEnv(t)
	env.fornecedores.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	w := env.do(http.MethodPut, "/fornecedores/"+uuid.NewString(), map[string]interface{}{"nome": "Moinho"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Fornecedor não encontrado", decodeError(t, w))
}

func TestFornecedorHandler_Delete(t *testing.T) {
	env := setupTestEnv(t)
	id := uuid.New()
	env.fornecedores.On("Delete", mock.Anything, id, env.userID).Return(nil)

	w := env.do(http.MethodDelete, "/fornecedores/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}
