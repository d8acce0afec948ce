// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"aquadesk-service/internal/domain/auth"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Register creates a new staff account (admin only)
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register user", err)
		return
	}

	response.Success(c, http.StatusCreated, "user registered", result)
}
