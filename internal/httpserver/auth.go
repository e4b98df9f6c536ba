package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type authHandler struct {
	svc    AuthService
	logger *log.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}
	token, admin, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err, "Admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "username": admin.Username})
}

func (h *authHandler) validate(c *gin.Context) {
	token := c.GetHeader(domain.SessionTokenHeader)
	username, err := h.svc.Validate(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Printf("auth: validate error=%v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "username": username})
}

func (h *authHandler) logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), c.GetHeader(domain.SessionTokenHeader)); err != nil {
		writeError(c, h.logger, err, "Session")
		return
	}
	c.Status(http.StatusNoContent)
}
