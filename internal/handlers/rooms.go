package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// RoomHandler handles salle de consultation requests.
type RoomHandler struct {
	DB *gorm.DB
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(db *gorm.DB) *RoomHandler {
	return &RoomHandler{DB: db}
}

// RoomRequest represents the request body for creating or updating a room.
type RoomRequest struct {
	Number   int `json:"numero" binding:"required,min=1"`
	Capacity int `json:"capacite" binding:"required,min=1"`
}

// CreateRoom adds a consultation room.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	room := models.ConsultationRoom{Number: req.Number, Capacity: req.Capacity}
	if err := h.DB.Create(&room).Error; err != nil {
		respondServiceError(c, "create room", err)
		return
	}
	utils.Created(c, "Room created successfully", room)
}

// GetRooms lists consultation rooms with pagination.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	page, size := pagination(c)
	var rooms []models.ConsultationRoom
	if err := h.DB.Order("number asc").Offset((page - 1) * size).Limit(size).Find(&rooms).Error; err != nil {
		respondServiceError(c, "list rooms", err)
		return
	}
	utils.Success(c, "Rooms fetched successfully", rooms)
}

// GetRoomByID returns one consultation room.
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	var room models.ConsultationRoom
	if err := h.DB.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Room not found")
			return
		}
		respondServiceError(c, "get room", err)
		return
	}
	utils.Success(c, "Room fetched successfully", room)
}

// UpdateRoom updates a consultation room.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var room models.ConsultationRoom
	if err := h.DB.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Room not found")
			return
		}
		respondServiceError(c, "update room", err)
		return
	}
	var req RoomRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	room.Number = req.Number
	room.Capacity = req.Capacity
	if err := h.DB.Save(&room).Error; err != nil {
		respondServiceError(c, "update room", err)
		return
	}
	utils.Success(c, "Room updated successfully", room)
}

// DeleteRoom removes a consultation room.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	var room models.ConsultationRoom
	if err := h.DB.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Room not found")
			return
		}
		respondServiceError(c, "delete room", err)
		return
	}
	if err := h.DB.Delete(&room).Error; err != nil {
		respondServiceError(c, "delete room", err)
		return
	}
	utils.Success(c, "Room deleted successfully", nil)
}
