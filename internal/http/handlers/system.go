package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /health
func (h Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GET / — friendly landing page for browsers and uptime checks.
func (h Handler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":   "LimoControl API",
		"status": "ok",
		"health": "/health",
		"login":  "POST /auth/login",
	})
}
