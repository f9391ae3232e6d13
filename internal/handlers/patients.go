package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// PatientHandler handles patient management requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// PatientRequest represents the request body for creating or updating a patient.
type PatientRequest struct {
	LastName    string `json:"nom" binding:"required"`
	FirstName   string `json:"prenom" binding:"required"`
	DateOfBirth string `json:"dateNaissance" binding:"required"`
	Address     string `json:"adresse" binding:"required"`
	Phone       string `json:"telephone" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// CreatePatient registers a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	dob, err := utils.ParseCalendarDate(req.DateOfBirth)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	patient := models.Patient{
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		DateOfBirth: dob,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
	}
	if err := h.DB.Create(&patient).Error; err != nil {
		respondServiceError(c, "create patient", err)
		return
	}
	utils.Created(c, "Patient created successfully", patient)
}

// GetPatients lists patients with pagination.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	page, size := pagination(c)
	var patients []models.Patient
	if err := h.DB.Order("last_name asc").Offset((page - 1) * size).Limit(size).Find(&patients).Error; err != nil {
		respondServiceError(c, "list patients", err)
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID returns one patient.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		respondServiceError(c, "get patient", err)
		return
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatient updates a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		respondServiceError(c, "update patient", err)
		return
	}

	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	dob, err := utils.ParseCalendarDate(req.DateOfBirth)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	patient.LastName = req.LastName
	patient.FirstName = req.FirstName
	patient.DateOfBirth = dob
	patient.Address = req.Address
	patient.Phone = req.Phone
	patient.Email = req.Email

	if err := h.DB.Save(&patient).Error; err != nil {
		respondServiceError(c, "update patient", err)
		return
	}
	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient removes a patient record.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		respondServiceError(c, "delete patient", err)
		return
	}
	if err := h.DB.Delete(&patient).Error; err != nil {
		respondServiceError(c, "delete patient", err)
		return
	}
	utils.Success(c, "Patient deleted successfully", nil)
}
