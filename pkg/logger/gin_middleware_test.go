package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	InitWithWriter("test-service", "debug", buf)

	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/insumos/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/falha", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
	})
	router.GET("/ausente", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
	})
	return router
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestGinLoggerMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/insumos/abc?x=1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, requestID, entry["request_id"])
	assert.Equal(t, "/insumos/:id", entry["route"])
	assert.Equal(t, "x=1", entry["query"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "HTTP request", entry["message"])
}

func TestGinLoggerMiddleware_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/insumos/abc", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", decodeLine(t, &buf)["request_id"])
}

func TestGinLoggerMiddleware_LevelByStatus(t *testing.T) {
	cases := map[string]string{
		"/falha":   "error",
		"/ausente": "warn",
	}

	for path, level := range cases {
		t.Run(path, func(t *testing.T) {
			var buf bytes.Buffer
			router := newLoggedRouter(&buf)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, level, decodeLine(t, &buf)["level"])
		})
	}
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("svc", "verbose", &buf)

	Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
