package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/domain/models"
)

type driverRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Phone   string `json:"phone"`
	License string `json:"license"`
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// GET /drivers
func (h Handler) ListDrivers(c *gin.Context) {
	drivers, err := h.Stores.Drivers.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// POST /drivers
func (h Handler) CreateDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	driver, err := h.Stores.Drivers.Create(models.DriverInput{Name: req.Name, Phone: req.Phone, License: req.License})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// PUT /drivers/:id
func (h Handler) UpdateDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	driver, err := h.Stores.Drivers.Update(c.Param("id"), models.DriverInput{Name: req.Name, Phone: req.Phone, License: req.License})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// PATCH /drivers/:id/active
func (h Handler) SetDriverActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	driver, err := h.Stores.Drivers.SetActive(c.Param("id"), *req.Active)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DELETE /drivers/:id
func (h Handler) DeleteDriver(c *gin.Context) {
	driver, err := h.Stores.Drivers.Delete(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}
