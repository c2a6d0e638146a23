package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/features/products/application"
)

// ProductHandler holds the product service.
type ProductHandler struct {
	productService application.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService application.ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{productService: productService, logger: logger}
}

// DefaultProductHandler serves the example product used to pre-fill the form.
func (h *ProductHandler) DefaultProductHandler(c *gin.Context) {
	product, err := h.productService.DefaultProduct()
	if err != nil {
		h.logger.Error("failed to load default product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting default product."})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", product)
}
