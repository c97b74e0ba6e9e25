package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/fichas-tecnicas/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/fichas-tecnicas/:id", "204"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fichas-tecnicas/6f1c2b9e", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fichas-tecnicas/a81d44c0", nil))

	after := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/fichas-tecnicas/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestGinPrometheusMiddleware_SkipsHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-health"))
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, float64(0), testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("metrics-health", "GET", "/health", "200")))
}

func TestRecordTransaction(t *testing.T) {
	commit := DbTransactions.WithLabelValues("metrics-tx", "ficha_update", "commit")
	rollback := DbTransactions.WithLabelValues("metrics-tx", "ficha_update", "rollback")

	RecordTransaction("metrics-tx", "ficha_update", nil)
	RecordTransaction("metrics-tx", "ficha_update", assert.AnError)

	assert.Equal(t, float64(1), testutil.ToFloat64(commit))
	assert.Equal(t, float64(1), testutil.ToFloat64(rollback))
}
