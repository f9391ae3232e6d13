package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// TreatmentHandler handles soin catalog requests.
type TreatmentHandler struct {
	DB *gorm.DB
}

// NewTreatmentHandler creates a new TreatmentHandler.
func NewTreatmentHandler(db *gorm.DB) *TreatmentHandler {
	return &TreatmentHandler{DB: db}
}

// CreateTreatmentRequest represents the request body for adding a soin.
type CreateTreatmentRequest struct {
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"prix" binding:"required,gt=0"`
	Category    string  `json:"categorie" binding:"required"`
}

// CreateTreatment adds a soin catalog entry.
func (h *TreatmentHandler) CreateTreatment(c *gin.Context) {
	var req CreateTreatmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Treatment
	if err := h.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Soin with this code already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(c, "create soin", err)
		return
	}

	treatment := models.Treatment{
		Code:        req.Code,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	if err := h.DB.Create(&treatment).Error; err != nil {
		respondServiceError(c, "create soin", err)
		return
	}
	utils.Created(c, "Soin created successfully", treatment)
}

// GetTreatments lists soin catalog entries with pagination.
func (h *TreatmentHandler) GetTreatments(c *gin.Context) {
	page, size := pagination(c)
	var treatments []models.Treatment
	if err := h.DB.Order("code asc").Offset((page - 1) * size).Limit(size).Find(&treatments).Error; err != nil {
		respondServiceError(c, "list soins", err)
		return
	}
	utils.Success(c, "Soins fetched successfully", treatments)
}

// GetTreatmentByID returns one soin.
func (h *TreatmentHandler) GetTreatmentByID(c *gin.Context) {
	var treatment models.Treatment
	if err := h.DB.First(&treatment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Soin not found")
			return
		}
		respondServiceError(c, "get soin", err)
		return
	}
	utils.Success(c, "Soin fetched successfully", treatment)
}

// UpdateTreatmentRequest represents the partial request body for updating a soin.
type UpdateTreatmentRequest struct {
	Description string  `json:"description"`
	Price       float64 `json:"prix" binding:"omitempty,gt=0"`
	Category    string  `json:"categorie"`
}

// UpdateTreatment updates a soin catalog entry. The code is immutable,
// billed lines reference it.
func (h *TreatmentHandler) UpdateTreatment(c *gin.Context) {
	var treatment models.Treatment
	if err := h.DB.First(&treatment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Soin not found")
			return
		}
		respondServiceError(c, "update soin", err)
		return
	}
	var req UpdateTreatmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Description != "" {
		treatment.Description = req.Description
	}
	if req.Price > 0 {
		treatment.Price = req.Price
	}
	if req.Category != "" {
		treatment.Category = req.Category
	}
	if err := h.DB.Save(&treatment).Error; err != nil {
		respondServiceError(c, "update soin", err)
		return
	}
	utils.Success(c, "Soin updated successfully", treatment)
}

// DeleteTreatment removes a soin catalog entry.
func (h *TreatmentHandler) DeleteTreatment(c *gin.Context) {
	var treatment models.Treatment
	if err := h.DB.First(&treatment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Soin not found")
			return
		}
		respondServiceError(c, "delete soin", err)
		return
	}
	if err := h.DB.Delete(&treatment).Error; err != nil {
		respondServiceError(c, "delete soin", err)
		return
	}
	utils.Success(c, "Soin deleted successfully", nil)
}
