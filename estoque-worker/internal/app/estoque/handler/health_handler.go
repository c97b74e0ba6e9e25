package handler

import (
	"context"
	"net/http"
	"time"

	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
)

const serviceName = "estoque-worker"

// HealthCheck - проверка одной зависимости (postgres, redis, mongo)
type HealthCheck func(ctx context.Context) error

// StatsProvider - источник статистики consumer
type StatsProvider interface {
	GetStats() kafka.ReaderStats
}

type HealthCheckHandler struct {
	checks   map[string]HealthCheck
	consumer StatsProvider
}

func NewHealthCheckHandler(checks map[string]HealthCheck, consumer StatsProvider) *HealthCheckHandler {
	return &HealthCheckHandler{checks: checks, consumer: consumer}
}

type consumerStats struct {
	Topic     string `json:"topic"`
	Partition string `json:"partition"`
	Messages  int64  `json:"messages"`
	Errors    int64  `json:"errors"`
	Offset    int64  `json:"offset"`
	Lag       int64  `json:"lag"`
}

// HealthCheck отвечает 503, если недоступна хотя бы одна зависимость.
// Статистика consumer информационная и на статус не влияет.
func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	body := gin.H{
		"status":       state,
		"service":      serviceName,
		"dependencies": deps,
		"timestamp":    time.Now().UTC(),
	}
	if h.consumer != nil {
		s := h.consumer.GetStats()
		body["consumer"] = consumerStats{
			Topic:     s.Topic,
			Partition: s.Partition,
			Messages:  s.Messages,
			Errors:    s.Errors,
			Offset:    s.Offset,
			Lag:       s.Lag,
		}
	}

	c.JSON(status, body)
}

func (h *HealthCheckHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "alive")
}

// SetupRoutes - служебный HTTP воркера: /health, /health/liveness и /metrics
func SetupRoutes(h *HealthCheckHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.GET("/health", h.HealthCheck)
	router.GET("/health/liveness", h.Liveness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
