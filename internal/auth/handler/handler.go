package handler

import (
	"errors"
	"net/http"
	"strings"

	"ads-manager-server/internal/apierrors"
	"ads-manager-server/internal/auth/processor"
	"ads-manager-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h Handler) HandleLogin(c *gin.Context) {
	ctx := c.Request.Context()
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_REQUEST", "Invalid login payload: "+err.Error())
		return
	}
	operator, err := h.authProcessor.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid email or password")
			return
		}
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, operator)
}

// HandleJWTMiddleware guards the protected route group. The operator email is
// stored on the gin context for downstream handlers.
func (h Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	tokenHeader := c.GetHeader("Authorization")
	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.Unauthorized(c, "Missing bearer token")
		c.Abort()
		return
	}

	email, err := h.authProcessor.ValidateJWTToken(ctx, strings.TrimPrefix(tokenHeader, "Bearer "))
	if err != nil {
		if errors.Is(err, processor.ErrExpiredToken) {
			apierrors.Unauthorized(c, "Session expired")
		} else {
			apierrors.Unauthorized(c, "Invalid session token")
		}
		c.Abort()
		return
	}

	c.Set("operator_email", email)
	c.Request = c.Request.WithContext(observability.WithFields(ctx,
		observability.Field{Key: "operator_email", Value: email},
	))
	c.Next()
}
