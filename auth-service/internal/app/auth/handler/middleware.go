package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieSession - запись и чтение cookie сессии
type CookieSession struct {
	Name   string
	Secure bool
	Domain string
}

// Set - HttpOnly, SameSite=Lax, срок совпадает с exp токена
func (s CookieSession) Set(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, maxAge, "/", s.Domain, s.Secure, true)
}

func (s CookieSession) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", s.Domain, s.Secure, true)
}

// Token - сначала cookie, затем заголовок Authorization: Bearer
func (s CookieSession) Token(c *gin.Context) string {
	if value, err := c.Cookie(s.Name); err == nil && value != "" {
		return value
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
