package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chat-widget/internal/service"
)

const (
	sessionClaimsKey = "session_claims"
	chatSessionKey   = "chat_session"
)

// SessionAuthMiddleware valida el token de sesion y carga la sesion en el contexto.
func SessionAuthMiddleware(tokens *service.TokenService, sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil || sessions == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sessions not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokens.Parse(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		sess, err := sessions.Get(claims.SessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			c.Abort()
			return
		}

		c.Set(sessionClaimsKey, claims)
		c.Set(chatSessionKey, sess)
		c.Next()
	}
}

// GetSessionClaims obtiene los claims del token desde el contexto.
func GetSessionClaims(c *gin.Context) (service.SessionClaims, bool) {
	val, ok := c.Get(sessionClaimsKey)
	if !ok {
		return service.SessionClaims{}, false
	}
	claims, ok := val.(service.SessionClaims)
	return claims, ok
}

// GetChatSession obtiene la sesion de chat cargada por SessionAuthMiddleware.
func GetChatSession(c *gin.Context) (*service.ChatSession, bool) {
	val, ok := c.Get(chatSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := val.(*service.ChatSession)
	return sess, ok
}
