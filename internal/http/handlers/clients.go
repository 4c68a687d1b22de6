package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/domain/models"
)

type clientRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// GET /clients
func (h Handler) ListClients(c *gin.Context) {
	clients, err := h.Stores.Clients.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// POST /clients
func (h Handler) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	client, err := h.Stores.Clients.Create(models.ClientInput{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// PUT /clients/:id
func (h Handler) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	client, err := h.Stores.Clients.Update(c.Param("id"), models.ClientInput{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// PATCH /clients/:id/active
func (h Handler) SetClientActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	client, err := h.Stores.Clients.SetActive(c.Param("id"), *req.Active)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DELETE /clients/:id
func (h Handler) DeleteClient(c *gin.Context) {
	client, err := h.Stores.Clients.Delete(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
