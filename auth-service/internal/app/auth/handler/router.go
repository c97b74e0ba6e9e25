package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"
)

const serviceName = "auth-service"

// HealthCheck - проверка одной зависимости для /health
type HealthCheck func(ctx context.Context) error

// SetupRoutes настраивает маршруты auth-service. Все /auth/* публичные.
func SetupRoutes(authHandler *AuthHandler, allowedOrigins []string, checks map[string]HealthCheck) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status, state := http.StatusOK, "ok"
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				status, state = http.StatusServiceUnavailable, "degraded"
				continue
			}
			deps[name] = "ok"
		}
		c.JSON(status, gin.H{"status": state, "service": serviceName, "dependencies": deps})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/status", authHandler.Status)
	}

	return router
}
