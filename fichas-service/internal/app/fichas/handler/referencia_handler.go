package handler

import (
	"net/http"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ReferenciaHandler - /unidades, /categorias-receitas, /categorias-insumos
type ReferenciaHandler struct {
	service   service.ReferenciaServiceInterface
	validator *validator.Validate
}

func NewReferenciaHandler(svc service.ReferenciaServiceInterface) *ReferenciaHandler {
	return &ReferenciaHandler{service: svc, validator: newValidator()}
}

// ListUnidades обрабатывает GET /unidades
func (h *ReferenciaHandler) ListUnidades(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	unidades, err := h.service.ListUnidades(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unidades)
}

// CreateUnidade обрабатывает POST /unidades
func (h *ReferenciaHandler) CreateUnidade(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var req entity.UnidadeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, validationMessage(err, "Nome e abreviação são obrigatórios"))
		return
	}

	unidade, err := h.service.CreateUnidade(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unidade)
}

func (h *ReferenciaHandler) ListCategoriasReceitas(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	categorias, err := h.service.ListCategoriasReceitas(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categorias)
}

func (h *ReferenciaHandler) CreateCategoriaReceita(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	req, ok := h.bindCategoria(c)
	if !ok {
		return
	}

	categoria, err := h.service.CreateCategoriaReceita(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoria)
}

func (h *ReferenciaHandler) ListCategoriasInsumos(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	categorias, err := h.service.ListCategoriasInsumos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categorias)
}

func (h *ReferenciaHandler) CreateCategoriaInsumo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	req, ok := h.bindCategoria(c)
	if !ok {
		return
	}

	categoria, err := h.service.CreateCategoriaInsumo(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoria)
}

func (h *ReferenciaHandler) bindCategoria(c *gin.Context) (*entity.CategoriaRequest, bool) {
	var req entity.CategoriaRequest
	if !bindJSON(c, &req) {
		return nil, false
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, validationMessage(err, "Nome é obrigatório"))
		return nil, false
	}
	return &req, true
}
