package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fichaspro/auth-service/internal/app/auth/entity"
	"fichaspro/auth-service/internal/app/auth/service"
	"fichaspro/auth-service/internal/app/auth/util"
	"fichaspro/pkg/logger"
)

const (
	msgCorpoInvalido       = "Corpo da requisição inválido"
	msgEmailInvalido       = "E-mail inválido"
	msgSenhaCurta          = "Senha deve ter no mínimo 6 caracteres"
	msgSenhaLonga          = "Senha deve ter no máximo 72 bytes"
	msgLoginObrigatorios   = "E-mail e senha são obrigatórios"
	msgEmailJaCadastrado   = "E-mail já cadastrado"
	msgCredenciaisInvalida = "E-mail ou senha inválidos"
	msgErroInterno         = "Erro interno do servidor"
	msgStatusErroInterno   = "Internal server error"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
	cookie      CookieSession
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthServiceInterface, cookie CookieSession) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		validator:   newValidator(),
	}
}

// newValidator - validator с тегом bcryptmax: длина пароля в байтах, а не в символах
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= util.MaxPasswordBytes
	})
	return v
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: msgCorpoInvalido})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: registerMessage(err)})
		return
	}

	session, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, entity.ErrorResponse{Error: msgEmailJaCadastrado})
			return
		}
		h.internalError(c, err)
		return
	}

	h.cookie.Set(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusCreated, sessionResponse(session))
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: msgCorpoInvalido})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: msgLoginObrigatorios})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: msgCredenciaisInvalida})
			return
		}
		h.internalError(c, err)
		return
	}

	h.cookie.Set(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, sessionResponse(session))
}

// Logout обрабатывает POST /auth/logout. Cookie очищается даже при сбое Redis.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.cookie.Token(c)); err != nil {
		logger.Error().Err(err).Str("request_id", c.GetString(logger.RequestIDKey)).Msg("logout failed")
	}
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

// Status обрабатывает GET /auth/status, без 401
func (h *AuthHandler) Status(c *gin.Context) {
	status, err := h.authService.Status(c.Request.Context(), h.cookie.Token(c))
	if err != nil {
		logger.Error().Err(err).Str("request_id", c.GetString(logger.RequestIDKey)).Msg("session status failed")
		msg := msgStatusErroInterno
		c.JSON(http.StatusInternalServerError, entity.StatusResponse{Error: &msg})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *AuthHandler) internalError(c *gin.Context, err error) {
	logger.Error().
		Err(err).
		Str("request_id", c.GetString(logger.RequestIDKey)).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: msgErroInterno})
}

func sessionResponse(session *entity.Session) entity.SessionResponse {
	return entity.SessionResponse{
		User:      session.User.Info(),
		ExpiresAt: session.ExpiresAt,
		Token:     session.Token,
	}
}

func registerMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].Field() == "Password" {
		if fieldErrors[0].Tag() == "bcryptmax" {
			return msgSenhaLonga
		}
		return msgSenhaCurta
	}
	return msgEmailInvalido
}
