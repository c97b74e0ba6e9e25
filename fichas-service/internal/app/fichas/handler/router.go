package handler

import (
	"context"
	"net/http"
	"time"

	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "fichas-service"

// Handlers - набор обработчиков сервиса
type Handlers struct {
	Referencias  *ReferenciaHandler
	Fornecedores *FornecedorHandler
	Insumos      *InsumoHandler
	Fichas       *FichaHandler
	Dashboard    *DashboardHandler
}

// HealthCheck - проверка одной зависимости для /health
type HealthCheck func(ctx context.Context) error

// SetupRoutes настраивает все маршруты fichas-service.
// Все, кроме /health и /metrics, проходит через шлюз сессии.
func SetupRoutes(h Handlers, session *SessionMiddleware, allowedOrigins []string, checks map[string]HealthCheck) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// Браузерный клиент отправляет cookie сессии, поэтому origins перечислены явно
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", healthHandler(checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("")
	api.Use(session.Authenticate())
	{
		api.GET("/unidades", h.Referencias.ListUnidades)
		api.POST("/unidades", h.Referencias.CreateUnidade)
		api.GET("/categorias-receitas", h.Referencias.ListCategoriasReceitas)
		api.POST("/categorias-receitas", h.Referencias.CreateCategoriaReceita)
		api.GET("/categorias-insumos", h.Referencias.ListCategoriasInsumos)
		api.POST("/categorias-insumos", h.Referencias.CreateCategoriaInsumo)

		api.GET("/fornecedores", h.Fornecedores.List)
		api.POST("/fornecedores", h.Fornecedores.Create)
		api.PUT("/fornecedores/:id", h.Fornecedores.Update)
		api.DELETE("/fornecedores/:id", h.Fornecedores.Delete)

		api.GET("/insumos", h.Insumos.List)
		api.POST("/insumos", h.Insumos.Create)
		api.GET("/insumos/:id", h.Insumos.Get)
		api.PUT("/insumos/:id", h.Insumos.Update)
		api.DELETE("/insumos/:id", h.Insumos.Delete)

		api.GET("/fichas-tecnicas", h.Fichas.List)
		api.POST("/fichas-tecnicas", h.Fichas.Create)
		api.GET("/fichas-tecnicas/:id", h.Fichas.Get)
		api.PUT("/fichas-tecnicas/:id", h.Fichas.Update)
		api.DELETE("/fichas-tecnicas/:id", h.Fichas.Delete)
		api.GET("/fichas-tecnicas/:id/pdf", h.Fichas.ExportPDF)
		api.GET("/fichas-tecnicas/:id/revisoes", h.Fichas.Revisoes)

		api.GET("/dashboard", h.Dashboard.Resumo)
	}

	return router
}

// healthHandler отвечает 503, если хотя бы одна зависимость недоступна
func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
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
		c.JSON(status, gin.H{
			"status":       state,
			"service":      serviceName,
			"dependencies": deps,
		})
	}
}
