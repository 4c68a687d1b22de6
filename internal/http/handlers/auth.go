package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"limocontrol/internal/auth"
	"limocontrol/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3"`
}

// POST /auth/login
func (h Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid credentials format")
		return
	}

	user, err := h.Stores.Users.FindByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		RespondDomainError(c, err)
		return
	}

	ok, needsUpgrade := auth.VerifyPassword(req.Password, user.PasswordHash)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	if needsUpgrade {
		// Best effort: a failed rehash must not fail the login.
		if hash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.Stores.Users.SetPasswordHash(user.ID, hash); err != nil {
				logrus.WithField("user_id", user.ID).WithError(err).Warn("failed to upgrade legacy password")
			} else {
				logrus.WithField("user_id", user.ID).Info("upgraded legacy password hash")
			}
		}
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Safe(),
	})
}
