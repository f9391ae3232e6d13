package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// MachineHandler handles clinic equipment requests.
type MachineHandler struct {
	DB *gorm.DB
}

// NewMachineHandler creates a new MachineHandler.
func NewMachineHandler(db *gorm.DB) *MachineHandler {
	return &MachineHandler{DB: db}
}

// CreateMachineRequest represents the request body for adding a machine.
type CreateMachineRequest struct {
	Name            string `json:"nom" binding:"required"`
	Model           string `json:"modele" binding:"required"`
	PurchaseDate    string `json:"dateAchat" binding:"required,calendardate"`
	LastServiceDate string `json:"dateDerniereRevision" binding:"required,calendardate"`
}

// CreateMachine adds a machine to the equipment inventory.
func (h *MachineHandler) CreateMachine(c *gin.Context) {
	var req CreateMachineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	purchaseDate, err := utils.ParseCalendarDate(req.PurchaseDate)
	if err != nil {
		respondServiceError(c, "create machine", err)
		return
	}
	lastServiceDate, err := utils.ParseCalendarDate(req.LastServiceDate)
	if err != nil {
		respondServiceError(c, "create machine", err)
		return
	}
	machine := models.Machine{
		Name:            req.Name,
		Model:           req.Model,
		PurchaseDate:    purchaseDate,
		LastServiceDate: lastServiceDate,
	}
	if err := h.DB.Create(&machine).Error; err != nil {
		respondServiceError(c, "create machine", err)
		return
	}
	utils.Created(c, "Machine created successfully", machine)
}

// GetMachines lists machines with pagination.
func (h *MachineHandler) GetMachines(c *gin.Context) {
	page, size := pagination(c)
	var machines []models.Machine
	if err := h.DB.Order("name asc").Offset((page - 1) * size).Limit(size).Find(&machines).Error; err != nil {
		respondServiceError(c, "list machines", err)
		return
	}
	utils.Success(c, "Machines fetched successfully", machines)
}

// GetMachineByID returns one machine with its assigned rooms.
func (h *MachineHandler) GetMachineByID(c *gin.Context) {
	var machine models.Machine
	if err := h.DB.Preload("Rooms").First(&machine, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Machine not found")
			return
		}
		respondServiceError(c, "get machine", err)
		return
	}
	utils.Success(c, "Machine fetched successfully", machine)
}

// UpdateMachineRequest represents the partial request body for updating
// a machine.
type UpdateMachineRequest struct {
	Name            string `json:"nom"`
	Model           string `json:"modele"`
	PurchaseDate    string `json:"dateAchat" binding:"omitempty,calendardate"`
	LastServiceDate string `json:"dateDerniereRevision" binding:"omitempty,calendardate"`
}

// UpdateMachine updates a machine. Absent fields keep their values.
func (h *MachineHandler) UpdateMachine(c *gin.Context) {
	var machine models.Machine
	if err := h.DB.First(&machine, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Machine not found")
			return
		}
		respondServiceError(c, "update machine", err)
		return
	}
	var req UpdateMachineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Name != "" {
		machine.Name = req.Name
	}
	if req.Model != "" {
		machine.Model = req.Model
	}
	if req.PurchaseDate != "" {
		purchaseDate, err := utils.ParseCalendarDate(req.PurchaseDate)
		if err != nil {
			respondServiceError(c, "update machine", err)
			return
		}
		machine.PurchaseDate = purchaseDate
	}
	if req.LastServiceDate != "" {
		lastServiceDate, err := utils.ParseCalendarDate(req.LastServiceDate)
		if err != nil {
			respondServiceError(c, "update machine", err)
			return
		}
		machine.LastServiceDate = lastServiceDate
	}
	if err := h.DB.Save(&machine).Error; err != nil {
		respondServiceError(c, "update machine", err)
		return
	}
	utils.Success(c, "Machine updated successfully", machine)
}

// DeleteMachine removes a machine and its room assignments.
func (h *MachineHandler) DeleteMachine(c *gin.Context) {
	var machine models.Machine
	if err := h.DB.First(&machine, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Machine not found")
			return
		}
		respondServiceError(c, "delete machine", err)
		return
	}
	if err := h.DB.Select("Rooms").Delete(&machine).Error; err != nil {
		respondServiceError(c, "delete machine", err)
		return
	}
	utils.Success(c, "Machine deleted successfully", nil)
}

// AssignMachineRequest represents the request body for assigning a
// machine to a consultation room.
type AssignMachineRequest struct {
	MachineID string `json:"machineId" binding:"required"`
	RoomID    string `json:"salleId" binding:"required"`
}

// AssignMachineToRoom links a machine to a consultation room.
func (h *MachineHandler) AssignMachineToRoom(c *gin.Context) {
	var req AssignMachineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	var machine models.Machine
	if err := h.DB.First(&machine, "id = ?", req.MachineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Machine not found")
			return
		}
		respondServiceError(c, "assign machine", err)
		return
	}
	var room models.ConsultationRoom
	if err := h.DB.First(&room, "id = ?", req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Salle not found")
			return
		}
		respondServiceError(c, "assign machine", err)
		return
	}
	if err := h.DB.Model(&machine).Association("Rooms").Append(&room); err != nil {
		respondServiceError(c, "assign machine", err)
		return
	}
	utils.Success(c, "Machine assigned to salle successfully", nil)
}
