package handlers

import (
	"errors"
	"net/http"

	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
	expiresIn   int
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, expiresIn int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		expiresIn:   expiresIn,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresIn: h.expiresIn,
	})
}
