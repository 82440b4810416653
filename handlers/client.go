package handlers

import (
	"errors"
	"net/http"

	"sftails/middleware"
	"sftails/services/client"

	"github.com/gin-gonic/gin"
)

// ClientHandler exposes client account endpoints.
type ClientHandler struct {
	Service client.ClientService
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(svc client.ClientService) *ClientHandler {
	return &ClientHandler{Service: svc}
}

// RegisterClientHandler handles POST /api/register.
func (h *ClientHandler) RegisterClientHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Register(input.Name, input.Email, input.Phone, input.Password)
	if err != nil {
		if errors.Is(err, client.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "user": resp.Client, "token": resp.Token})
}

// AuthenticateClientHandler handles POST /api/login.
func (h *ClientHandler) AuthenticateClientHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	resp, err := h.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": resp.Client, "token": resp.Token})
}

// GetClientProfileHandler handles GET /api/clients/me.
func (h *ClientHandler) GetClientProfileHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	cl, err := h.Service.GetByID(principal.SubjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, cl)
}

// UpdateClientProfileHandler handles PUT /api/clients/me.
func (h *ClientHandler) UpdateClientProfileHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cl, err := h.Service.UpdateContact(principal.SubjectID, input.Name, input.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cl)
}

// DeleteClientHandler handles DELETE /api/clients/me. Removes the account and
// cascades to pets, bookings, and payments.
func (h *ClientHandler) DeleteClientHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	if err := h.Service.Delete(principal.SubjectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
