package handler

import (
	"net/http"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInsumoCreateObrigatorios = "Campos obrigatórios: nome, categoria, unidade e preço"
	msgInsumoUpdateObrigatorios = "Nome, categoria, unidade e preço são obrigatórios"
)

// InsumoHandler - /insumos
type InsumoHandler struct {
	service   service.InsumoServiceInterface
	validator *validator.Validate
}

func NewInsumoHandler(svc service.InsumoServiceInterface) *InsumoHandler {
	return &InsumoHandler{service: svc, validator: newValidator()}
}

func (h *InsumoHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	insumos, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insumos)
}

func (h *InsumoHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	insumo, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insumo)
}

// Create обрабатывает POST /insumos. precoPorUnidade = 0 допустим.
func (h *InsumoHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req entity.InsumoRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, validationMessage(err, msgInsumoCreateObrigatorios))
		return
	}

	insumo, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insumo)
}

func (h *InsumoHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.InsumoRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, validationMessage(err, msgInsumoUpdateObrigatorios))
		return
	}

	insumo, err := h.service.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insumo)
}

// Delete обрабатывает DELETE /insumos/:id. 409, если сырье есть в составе ficha.
func (h *InsumoHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}
