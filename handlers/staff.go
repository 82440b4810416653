package handlers

import (
	"errors"
	"net/http"

	"sftails/services/staff"

	"github.com/gin-gonic/gin"
)

// StaffHandler exposes staff account endpoints.
type StaffHandler struct {
	Service staff.StaffService
}

// NewStaffHandler creates a StaffHandler.
func NewStaffHandler(svc staff.StaffService) *StaffHandler {
	return &StaffHandler{Service: svc}
}

// RegisterStaffHandler handles POST /api/staffregister.
func (h *StaffHandler) RegisterStaffHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Register(input.Name, input.Email, input.Phone, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, staff.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Staff registration successful", "user": resp.Staff, "token": resp.Token})
}

// AuthenticateStaffHandler handles POST /api/stafflogin.
func (h *StaffHandler) AuthenticateStaffHandler(c *gin.Context) {
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
		if errors.Is(err, staff.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff login successful", "user": resp.Staff, "token": resp.Token})
}
