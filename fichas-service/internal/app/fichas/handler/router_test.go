package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealth_ReportsDependencies(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]HealthCheck
		code   int
		status string
	}{
		{
			name:   "all up",
			checks: map[string]HealthCheck{"postgres": func(context.Context) error { return nil }},
			code:   http.StatusOK,
			status: `"status":"ok"`,
		},
		{
			name: "redis down",
			checks: map[string]HealthCheck{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			code:   http.StatusServiceUnavailable,
			status: `"status":"degraded"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupRoutes(Handlers{}, NewSessionMiddleware(testSecret, testCookie, nil), nil, tt.checks)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.status)
		})
	}
}

func TestDashboard_Resumo(t *testing.T) {
	env := setupTestEnv(t)
	env.fichas.On("Count", mock.Anything, env.userID).Return(int64(4), nil)
	env.insumos.On("Count", mock.Anything, env.userID).Return(int64(12), nil)
	env.fornecedores.On("Count", mock.Anything, env.userID).Return(int64(2), nil)
	env.insumos.On("ListEstoqueBaixo", mock.Anything, env.userID).Return([]entity.Insumo{{Nome: "Farinha", EstoqueBaixo: true}}, nil)

	w := env.do(http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalFichas":4`)
	assert.Contains(t, w.Body.String(), `"totalInsumos":12`)
	assert.Contains(t, w.Body.String(), `"totalFornecedores":2`)
	assert.Contains(t, w.Body.String(), `"Farinha"`)
}

func TestDashboard_InternalErrorIsGeneric(t *testing.T) {
	env := setupTestEnv(t)
	env.fichas.On("Count", mock.Anything, env.userID).Return(int64(0), errors.New("pq: connection reset"))
	env.insumos.On("Count", mock.Anything, env.userID).Return(int64(0), nil)
	env.fornecedores.On("Count", mock.Anything, env.userID).Return(int64(0), nil)
	env.insumos.On("ListEstoqueBaixo", mock.Anything, env.userID).Return([]entity.Insumo{}, nil)

	w := env.do(http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro interno do servidor", decodeError(t, w))
	assert.NotContains(t, w.Body.String(), "pq:")
}
