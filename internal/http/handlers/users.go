package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/auth"
	"limocontrol/internal/domain/models"
)

// Resetting a password always falls back to this value; the user is
// expected to change it on first login.
const defaultResetPassword = "admin"

type createUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type updateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2"`
	Role *string `json:"role" binding:"omitempty,oneof=admin user"`
}

// GET /users
func (h Handler) ListUsers(c *gin.Context) {
	users, err := h.Stores.Users.ListSafe()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /users
func (h Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	user, err := h.Stores.Users.Create(models.UserCreate{Name: req.Name, Email: req.Email, Role: role}, hash)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /users/:id
func (h Handler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	update := models.UserUpdate{Name: req.Name}
	if req.Role != nil {
		role := models.Role(*req.Role)
		update.Role = &role
	}
	user, err := h.Stores.Users.Update(c.Param("id"), update)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /users/:id/reset-password
func (h Handler) ResetUserPassword(c *gin.Context) {
	hash, err := auth.HashPassword(defaultResetPassword)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.Stores.Users.SetPasswordHash(c.Param("id"), hash); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /users/:id
func (h Handler) DeleteUser(c *gin.Context) {
	user, err := h.Stores.Users.Delete(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
