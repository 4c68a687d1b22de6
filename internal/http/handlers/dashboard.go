package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/http/middleware"
)

// GET /dashboard — admins aggregate over everything, other callers
// over their own trips only.
func (h Handler) DashboardSummary(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	owner := ident.UserID
	if ident.IsAdmin() {
		owner = ""
	}
	summary, err := h.Stores.Dashboard.Summary(owner)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
