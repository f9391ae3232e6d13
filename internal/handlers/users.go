package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// UserHandler handles staff account management requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a staff account.
type CreateUserRequest struct {
	LastName  string `json:"nom" binding:"required"`
	FirstName string `json:"prenom" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"numeroTelephone"`
	Password  string `json:"motDePasse" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=ADMIN DENTIST ASSISTANT"`
}

// CreateUser creates a staff account. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(c, "create user", err)
		return
	}

	user := models.User{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      models.Role(req.Role),
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondServiceError(c, "create user", err)
		return
	}
	if err := h.DB.Create(&user).Error; err != nil {
		respondServiceError(c, "create user", err)
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers lists staff accounts with pagination.
func (h *UserHandler) GetUsers(c *gin.Context) {
	page, size := pagination(c)

	var users []models.User
	if err := h.DB.Order("created_at desc").Offset((page - 1) * size).Limit(size).Find(&users).Error; err != nil {
		respondServiceError(c, "list users", err)
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUserByID returns one staff account.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		respondServiceError(c, "get user", err)
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents the partial request body for updating a staff account.
type UpdateUserRequest struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Phone     string `json:"numeroTelephone"`
	Password  string `json:"motDePasse"`
	Role      string `json:"role" binding:"omitempty,oneof=ADMIN DENTIST ASSISTANT"`
}

// UpdateUser updates a staff account. Admin only.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		respondServiceError(c, "update user", err)
		return
	}

	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = models.Role(req.Role)
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			respondServiceError(c, "update user", err)
			return
		}
	}

	if err := h.DB.Save(&user).Error; err != nil {
		respondServiceError(c, "update user", err)
		return
	}
	utils.Success(c, "User updated successfully", user.Sanitize())
}

// DeleteUser removes a staff account. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		respondServiceError(c, "delete user", err)
		return
	}
	if err := h.DB.Delete(&user).Error; err != nil {
		respondServiceError(c, "delete user", err)
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}
