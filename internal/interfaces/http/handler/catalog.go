package handler

import (
	"github.com/gipsy-office/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles the read-only product catalog endpoints
type CatalogHandler struct {
	BaseHandler
	service *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes under the API group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/catalog")
	{
		group.GET("/products", h.ListProducts)
		group.GET("/categories", h.ListCategories)
		group.GET("/recipes", h.ListRecipes)
	}
}

// ListProducts returns active products, optionally filtered by category
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	responses, err := h.service.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// ListCategories returns the distinct categories of active products
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListRecipes returns all recipes with their ingredient lines
func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.service.ListRecipes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recipes)
}
