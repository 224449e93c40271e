package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-widget/internal/service"
)

// SessionHandler expone la vista de chat de una sesion.
type SessionHandler struct {
	logger   *zap.Logger
	sessions *service.SessionService
	tokens   *service.TokenService
}

// NewSessionHandler crea una instancia de SessionHandler con dependencias necesarias.
func NewSessionHandler(logger *zap.Logger, sessions *service.SessionService, tokens *service.TokenService) *SessionHandler {
	return &SessionHandler{
		logger:   logger,
		sessions: sessions,
		tokens:   tokens,
	}
}

// CreateSession maneja POST /session.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess, err := h.sessions.Create()
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	token, err := h.tokens.Issue(sess.ID(), sess.ExpiresAt())
	if err != nil {
		h.logger.Error("issue session token failed", zap.Error(err))
		_ = h.sessions.Close(sess.ID())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID(),
		"token":      token,
		"expires_at": sess.ExpiresAt(),
	})
}

// GetSession maneja GET /session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := GetChatSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// UpdateDraft maneja PUT /session/draft.
func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	sess, ok := GetChatSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Draft *string `json:"draft"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Draft == nil {
		h.logger.Warn("invalid update draft request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, sess.SetDraft(*req.Draft))
}

// Submit maneja POST /session/submit. Responde sin esperar al endpoint de
// consultas; la respuesta del bot aparece en un GET posterior.
func (h *SessionHandler) Submit(c *gin.Context) {
	sess, ok := GetChatSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sub, submitted := sess.Submit()
	if submitted {
		h.logger.Info("draft submitted",
			zap.String("session_id", sess.ID()),
			zap.String("request_id", sub.RequestID),
		)
	}

	status := http.StatusAccepted
	if !submitted {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"submitted":  submitted,
		"request_id": sub.RequestID,
		"session":    sess.Snapshot(),
	})
}

// CloseSession maneja DELETE /session.
func (h *SessionHandler) CloseSession(c *gin.Context) {
	sess, ok := GetChatSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err := h.sessions.Close(sess.ID()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if claims, ok := GetSessionClaims(c); ok {
		h.logger.Info("session token retired",
			zap.String("session_id", claims.SessionID),
			zap.String("token_id", claims.ID),
		)
	}
	c.Status(http.StatusNoContent)
}
