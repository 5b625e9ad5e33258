package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/slideforge/slideforge-backend/internal/pkg/errors"
	"github.com/slideforge/slideforge-backend/internal/middleware"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

const tokenTTL = 12 * time.Hour

// AuthHandler exchanges the shared service key for a JWT. Decks are produced
// by trusted callers (a web frontend or batch jobs), not end users, so a
// single service credential is enough.
type AuthHandler struct {
	log        *logger.Logger
	auth       *middleware.AuthMiddleware
	serviceKey string
}

func NewAuthHandler(baseLog *logger.Logger, auth *middleware.AuthMiddleware, serviceKey string) *AuthHandler {
	return &AuthHandler{
		log:        baseLog.With("handler", "AuthHandler"),
		auth:       auth,
		serviceKey: serviceKey,
	}
}

type tokenRequest struct {
	APIKey  string `json:"api_key" binding:"required"`
	Subject string `json:"subject"`
}

func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if h.serviceKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.serviceKey)) != 1 {
		RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	subject := req.Subject
	if subject == "" {
		subject = "service"
	}
	token, err := h.auth.IssueToken(subject, tokenTTL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token_issue", err)
		return
	}
	RespondOK(c, gin.H{"token": token, "expires_in": int(tokenTTL.Seconds())})
}
