package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/infrastructure/pdf"
	"fichaspro/fichas-service/internal/app/fichas/repository/mocks"
	"fichaspro/fichas-service/internal/app/fichas/service"
	"fichaspro/fichas-service/internal/app/fichas/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testCookie = "fichas_session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv - роутер с настоящими сервисами поверх моков репозиториев
type testEnv struct {
	router       *gin.Engine
	redis        *miniredis.Miniredis
	referencias  *mocks.MockReferenciaRepository
	fornecedores *mocks.MockFornecedorRepository
	insumos      *mocks.MockInsumoRepository
	fichas       *mocks.MockFichaRepository
	revisoes     *mocks.MockRevisaoRepository
	userID       uuid.UUID
	token        string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := util.NewRedisClientFrom(client)

	env := &testEnv{
		redis:        mr,
		referencias:  new(mocks.MockReferenciaRepository),
		fornecedores: new(mocks.MockFornecedorRepository),
		insumos:      new(mocks.MockInsumoRepository),
		fichas:       new(mocks.MockFichaRepository),
		revisoes:     new(mocks.MockRevisaoRepository),
		userID:       uuid.New(),
	}

	handlers := Handlers{
		Referencias:  NewReferenciaHandler(service.NewReferenciaService(env.referencias, cache, time.Minute)),
		Fornecedores: NewFornecedorHandler(service.NewFornecedorService(env.fornecedores)),
		Insumos:      NewInsumoHandler(service.NewInsumoService(env.insumos, env.referencias, env.fornecedores, nil)),
		Fichas: NewFichaHandler(service.NewFichaService(
			env.fichas, env.referencias, env.insumos, env.revisoes, pdf.NewFichaRenderer(), nil,
		)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(env.fichas, env.insumos, env.fornecedores)),
	}

	session := NewSessionMiddleware(testSecret, testCookie, cache)
	env.router = SetupRoutes(handlers, session, []string{"http://localhost:3000"}, nil)
	env.token = signToken(t, env.userID.String(), "jti-"+uuid.NewString(), time.Now().Add(time.Hour))
	return env
}

func signToken(t *testing.T, userID, jti string, expiresAt time.Time) string {
	t.Helper()
	claims := SessionClaims{
		UserID: userID,
		Email:  "chef@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// do выполняет запрос с cookie сессии
func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: e.token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}
