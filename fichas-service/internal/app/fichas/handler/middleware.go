package handler

import (
	"net/http"
	"strings"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/util"
	"fichaspro/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims - полезная нагрузка токена, выпущенного auth-service
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SessionMiddleware - шлюз авторизации: cookie сессии или Bearer, подпись HS256,
// срок действия и отзыв через Redis
type SessionMiddleware struct {
	jwtSecret  []byte
	cookieName string
	revocation util.RevocationChecker
}

func NewSessionMiddleware(jwtSecret, cookieName string, revocation util.RevocationChecker) *SessionMiddleware {
	return &SessionMiddleware{
		jwtSecret:  []byte(jwtSecret),
		cookieName: cookieName,
		revocation: revocation,
	}
}

func (m *SessionMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessao, ok := m.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: msgUnauthorized})
			return
		}

		c.Set(sessaoKey, sessao)
		c.Set(userIDKey, sessao.UserID.String())
		c.Next()
	}
}

func (m *SessionMiddleware) resolve(c *gin.Context) (entity.Sessao, bool) {
	raw := m.tokenFromRequest(c)
	if raw == "" {
		return entity.Sessao{}, false
	}

	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return entity.Sessao{}, false
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return entity.Sessao{}, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return entity.Sessao{}, false
	}

	// без jti сессию нельзя отозвать, такой токен не принимаем
	if claims.ID == "" {
		return entity.Sessao{}, false
	}
	if m.revocation != nil {
		revoked, err := m.revocation.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Warn().Err(err).Msg("session revocation check failed")
			return entity.Sessao{}, false
		}
		if revoked {
			return entity.Sessao{}, false
		}
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return entity.Sessao{
		UserID:    userID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}, true
}

// tokenFromRequest - сначала cookie, затем Authorization: Bearer
func (m *SessionMiddleware) tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
