package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rota600-pos/hub"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// SaveProduct -> creates a product, or updates an existing one when the
// payload carries an id. Negative price/stock are rejected at this boundary.
func (pc *ProductController) SaveProduct(c *gin.Context) {
	var req struct {
		ID       *uint   `json:"id"`
		Name     string  `json:"name" binding:"required"`
		Price    float64 `json:"price" binding:"gte=0"`
		Stock    int     `json:"stock" binding:"gte=0"`
		Category string  `json:"category"`
		Frozen   *bool   `json:"frozen"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.ID == nil {
		product := models.Product{
			Name:     req.Name,
			Price:    req.Price,
			Stock:    req.Stock,
			Category: req.Category,
			Frozen:   req.Frozen != nil && *req.Frozen,
		}
		if err := pc.DB.Create(&product).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		hub.PublishGlobalSnapshot(pc.DB)
		utils.InfoLogger.Printf("Product created: %s (price=%s stock=%d category=%s)",
			product.Name, utils.FormatCurrency(product.Price), product.Stock, product.Category)
		utils.RespondJSON(c, http.StatusCreated, "Product created", product)
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, *req.ID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category
	if req.Frozen != nil {
		product.Frozen = *req.Frozen
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.PublishGlobalSnapshot(pc.DB)
	utils.InfoLogger.Printf("Product %d updated: %s (price=%s stock=%d)",
		product.ID, product.Name, utils.FormatCurrency(product.Price), product.Stock)
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// GetAllProducts -> the catalog ordered by name, same ordering the global
// snapshot uses.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}
