package handlers

import (
	"net/http"

	"food-catalog-api/apperr"
	"food-catalog-api/middleware"
	"food-catalog-api/models"
	"food-catalog-api/pkg/resp"
	"food-catalog-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, errInvalidBody)
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Message(c, http.StatusCreated, "User registered successfully")
}

// Login authenticates a user and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, errInvalidBody)
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, result)
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		resp.Error(c, apperr.Unauthorized("Not authorized"))
		return
	}
	resp.OK(c, user)
}

var errInvalidBody = apperr.BadInput("Invalid request body")
