package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// ProductHandler handles consumable inventory requests.
type ProductHandler struct {
	DB *gorm.DB
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// ProductRequest represents the request body for creating a product.
type ProductRequest struct {
	Name      string  `json:"nom" binding:"required"`
	Quantity  int     `json:"quantite" binding:"min=0"`
	Threshold int     `json:"seuil" binding:"min=0"`
	Supplier  string  `json:"fournisseur" binding:"required"`
	UnitPrice float64 `json:"prixUnitaire" binding:"required,gt=0"`
}

// CreateProduct adds an inventory item.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	product := models.Product{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		Supplier:  req.Supplier,
		UnitPrice: req.UnitPrice,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		respondServiceError(c, "create product", err)
		return
	}
	utils.Created(c, "Product created successfully", product)
}

// GetProducts lists inventory items with pagination.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, size := pagination(c)
	var products []models.Product
	if err := h.DB.Order("name asc").Offset((page - 1) * size).Limit(size).Find(&products).Error; err != nil {
		respondServiceError(c, "list products", err)
		return
	}
	utils.Success(c, "Products fetched successfully", products)
}

// GetLowStockProducts lists items whose quantity reached their threshold.
func (h *ProductHandler) GetLowStockProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Where("quantity <= threshold").Order("name asc").Find(&products).Error; err != nil {
		respondServiceError(c, "list low stock products", err)
		return
	}
	utils.Success(c, "Low stock products fetched successfully", products)
}

// GetProductByID returns one inventory item.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Product not found")
			return
		}
		respondServiceError(c, "get product", err)
		return
	}
	utils.Success(c, "Product fetched successfully", product)
}

// UpdateProductRequest represents the partial request body for updating a product.
type UpdateProductRequest struct {
	Name      string   `json:"nom"`
	Quantity  *int     `json:"quantite" binding:"omitempty,min=0"`
	Threshold *int     `json:"seuil" binding:"omitempty,min=0"`
	Supplier  string   `json:"fournisseur"`
	UnitPrice *float64 `json:"prixUnitaire" binding:"omitempty,gt=0"`
}

// UpdateProduct updates an inventory item.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Product not found")
			return
		}
		respondServiceError(c, "update product", err)
		return
	}
	var req UpdateProductRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		product.Threshold = *req.Threshold
	}
	if req.Supplier != "" {
		product.Supplier = req.Supplier
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if err := h.DB.Save(&product).Error; err != nil {
		respondServiceError(c, "update product", err)
		return
	}
	utils.Success(c, "Product updated successfully", product)
}

// DeleteProduct removes an inventory item.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Product not found")
			return
		}
		respondServiceError(c, "delete product", err)
		return
	}
	if err := h.DB.Delete(&product).Error; err != nil {
		respondServiceError(c, "delete product", err)
		return
	}
	utils.Success(c, "Product deleted successfully", nil)
}
