package handler

import (
	"net/http"

	"fichaspro/fichas-service/internal/app/fichas/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardServiceInterface
}

func NewDashboardHandler(svc service.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Resumo обрабатывает GET /dashboard
func (h *DashboardHandler) Resumo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	resumo, err := h.service.Resumo(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumo)
}
