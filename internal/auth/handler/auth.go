package handler

import (
	"strings"

	"voice-assistant/internal/apierrors"
	"voice-assistant/internal/auth/processor"
	"voice-assistant/internal/observability"

	"github.com/gin-gonic/gin"
)

// OperatorKey is the gin context key holding the token subject.
const OperatorKey = "Operator-ID"

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")
	claims, err := h.authProcessor.ValidateToken(ctx, tokenString)
	if err != nil {
		apierrors.Unauthorized(c, err.Error())
		return
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		apierrors.Unauthorized(c, "Authorization token has no subject")
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "operator", Value: sub})
	c.Request = c.Request.WithContext(ctx)
	c.Set(OperatorKey, sub)
	c.Next()
}
