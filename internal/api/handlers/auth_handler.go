package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/api/middleware"
	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/domain/user"
	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type AuthHandler struct {
	service *application.UserService
}

func NewAuthHandler(service *application.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.Register(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u.Public()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.Authenticate(req)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := middleware.GenerateToken(u)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsAdmin:   u.IsAdmin(),
	})
}

// Logout clears the token cookie. Bearer tokens are stateless; clients
// simply discard them.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.Get(claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u.Public()})
}
