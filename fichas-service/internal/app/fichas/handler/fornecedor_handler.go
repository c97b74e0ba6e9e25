package handler

import (
	"errors"
	"net/http"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FornecedorHandler - /fornecedores
type FornecedorHandler struct {
	service   service.FornecedorServiceInterface
	validator *validator.Validate
}

func NewFornecedorHandler(svc service.FornecedorServiceInterface) *FornecedorHandler {
	return &FornecedorHandler{service: svc, validator: newValidator()}
}

func (h *FornecedorHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fornecedores, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fornecedores)
}

func (h *FornecedorHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	fornecedor, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fornecedor)
}

// Update обрабатывает PUT /fornecedores/:id
func (h *FornecedorHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	fornecedor, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fornecedor)
}

// Delete обрабатывает DELETE /fornecedores/:id. Сырье поставщика остается без поставщика.
func (h *FornecedorHandler) Delete(c *gin.Context) {
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

func (h *FornecedorHandler) bind(c *gin.Context) (*entity.FornecedorRequest, bool) {
	var req entity.FornecedorRequest
	if !bindJSON(c, &req) {
		return nil, false
	}
	req.Normalize()

	if err := h.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Email" && verrs[0].Tag() == "email" {
			badRequest(c, "E-mail inválido")
			return nil, false
		}
		badRequest(c, validationMessage(err, "Nome é obrigatório"))
		return nil, false
	}
	return &req, true
}
