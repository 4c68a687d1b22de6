package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/domain/models"
)

type companyRequest struct {
	Name  string `json:"name" binding:"required,min=2"`
	Phone string `json:"phone"`
}

// GET /companies
func (h Handler) ListCompanies(c *gin.Context) {
	companies, err := h.Stores.Companies.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// POST /companies
func (h Handler) CreateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	company, err := h.Stores.Companies.Create(models.CompanyInput{Name: req.Name, Phone: req.Phone})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// PUT /companies/:id
func (h Handler) UpdateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	company, err := h.Stores.Companies.Update(c.Param("id"), models.CompanyInput{Name: req.Name, Phone: req.Phone})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// PATCH /companies/:id/active
func (h Handler) SetCompanyActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	company, err := h.Stores.Companies.SetActive(c.Param("id"), *req.Active)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// DELETE /companies/:id
func (h Handler) DeleteCompany(c *gin.Context) {
	company, err := h.Stores.Companies.Delete(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
