package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/service"
	"fichaspro/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	sessaoKey = "sessao"
	userIDKey = "user_id"

	msgUnauthorized     = "Unauthorized"
	msgErroInterno      = "Erro interno do servidor"
	msgIDInvalido       = "ID inválido"
	msgCorpoInvalido    = "Corpo da requisição inválido"
	msgFichaNaoEncontr  = "Ficha técnica não encontrada"
	msgInsumoNaoEncontr = "Insumo não encontrado"
	msgFornNaoEncontr   = "Fornecedor não encontrado"
	msgInsumoEmUso      = "Insumo em uso em fichas técnicas"
)

// newValidator - validator с поддержкой DecimalFlex:
// required срабатывает только на отсутствующее или нераспознанное число, 0 допустим
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(entity.DecimalFlex); ok && d.Valid {
			return d.Decimal.String()
		}
		return nil
	}, entity.DecimalFlex{})
	return v
}

// validationMessage - пропущенное обязательное поле дает fallback,
// превышение длины колонки - сообщение с именем поля и лимитом
func validationMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fallback
	}
	for _, fe := range verrs {
		if fe.Tag() != "max" {
			return fallback
		}
	}
	campo := verrs[0].Field()
	campo = strings.ToLower(campo[:1]) + campo[1:]
	return fmt.Sprintf("Campo %s excede o limite de %s caracteres", campo, verrs[0].Param())
}

// sessaoAtual - сессия, положенная SessionMiddleware
func sessaoAtual(c *gin.Context) (entity.Sessao, bool) {
	value, exists := c.Get(sessaoKey)
	if !exists {
		return entity.Sessao{}, false
	}
	sessao, ok := value.(entity.Sessao)
	return sessao, ok && sessao.UserID != uuid.Nil
}

// requireUser возвращает id пользователя или отвечает 401
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	sessao, ok := sessaoAtual(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: msgUnauthorized})
		return uuid.Nil, false
	}
	return sessao.UserID, true
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: msgIDInvalido})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: msgCorpoInvalido})
		return false
	}
	return true
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: message})
}

// respondError переводит ошибки сервиса в HTTP-ответ. Детали внутренних ошибок только в лог.
func respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	var conflito *service.ConflitoVersaoError

	switch {
	case errors.As(err, &validation):
		badRequest(c, validation.Message)
	case errors.As(err, &conflito):
		c.JSON(http.StatusConflict, entity.ErrorResponse{
			Error: fmt.Sprintf("A ficha técnica foi alterada por outra sessão (versão atual: %d)", conflito.Atual),
		})
	case errors.Is(err, service.ErrFichaNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: msgFichaNaoEncontr})
	case errors.Is(err, service.ErrInsumoNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: msgInsumoNaoEncontr})
	case errors.Is(err, service.ErrFornecedorNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: msgFornNaoEncontr})
	case errors.Is(err, service.ErrInsumoEmUso):
		c.JSON(http.StatusConflict, entity.ErrorResponse{Error: msgInsumoEmUso})
	default:
		_ = c.Error(err)
		logger.Error().
			Err(err).
			Str("request_id", c.GetString(logger.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: msgErroInterno})
	}
}
