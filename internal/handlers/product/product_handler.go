// internal/handlers/product/product_handler.go
package product

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/product"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/product"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProduct creates a new product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create product", err)
		return
	}

	response.Success(c, http.StatusCreated, "product created", result)
}

// GetProduct retrieves a product by ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	result, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to retrieve product", err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", result)
}

// UpdateProduct updates a product's details
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update product", err)
		return
	}

	response.Success(c, http.StatusOK, "product updated", result)
}

// SetProductStatus activates or deactivates a product
func (h *ProductHandler) SetProductStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.productService.SetProductStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		response.FromError(c, "failed to update product status", err)
		return
	}

	response.Success(c, http.StatusOK, "product status updated", nil)
}

// DeleteProduct soft-deletes a product
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete product", err)
		return
	}

	response.Success(c, http.StatusOK, "product deleted", nil)
}

// ListProducts retrieves products with filters
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filters product.ProductListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list products", err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", result)
}
