package handler

import (
	"fmt"
	"net/http"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/infrastructure/pdf"
	"fichaspro/fichas-service/internal/app/fichas/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgFichaCreateObrigatorios = "Campos obrigatórios: nome, categoria e modo de preparo"
	msgFichaUpdateObrigatorios = "Nome, categoria e modo de preparo são obrigatórios"
)

// FichaHandler - /fichas-tecnicas
type FichaHandler struct {
	service   service.FichaServiceInterface
	validator *validator.Validate
}

func NewFichaHandler(svc service.FichaServiceInterface) *FichaHandler {
	return &FichaHandler{service: svc, validator: newValidator()}
}

func (h *FichaHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fichas, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fichas)
}

func (h *FichaHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ficha, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ficha)
}

func (h *FichaHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req entity.FichaRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, validationMessage(err, msgFichaCreateObrigatorios))
		return
	}

	ficha, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ficha)
}

// Update обрабатывает PUT /fichas-tecnicas/:id.
// С полем versao в теле обновление условное, устаревшая версия дает 409.
func (h *FichaHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.FichaRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, validationMessage(err, msgFichaUpdateObrigatorios))
		return
	}

	ficha, err := h.service.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ficha)
}

func (h *FichaHandler) Delete(c *gin.Context) {
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

// Revisoes обрабатывает GET /fichas-tecnicas/:id/revisoes
func (h *FichaHandler) Revisoes(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	revisoes, err := h.service.Revisoes(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, revisoes)
}

// ExportPDF обрабатывает GET /fichas-tecnicas/:id/pdf
func (h *FichaHandler) ExportPDF(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ficha, content, err := h.service.ExportPDF(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.FileName(ficha)))
	c.Data(http.StatusOK, "application/pdf", content)
}
